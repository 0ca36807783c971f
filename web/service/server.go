package service

import (
	"io"
	"os"
	"time"

	"lotto-ui/config"
	"lotto-ui/database"
	"lotto-ui/database/model"
	"lotto-ui/logger"
	"lotto-ui/util/common"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// Status is the panel's dashboard snapshot: host health plus the lottery
// bookkeeping counters.
type Status struct {
	T   time.Time `json:"-"`
	Cpu float64   `json:"cpu"`
	Mem struct {
		Current uint64 `json:"current"`
		Total   uint64 `json:"total"`
	} `json:"mem"`
	Uptime  uint64 `json:"uptime"`
	Tickets struct {
		Pending int64 `json:"pending"`
		Won     int64 `json:"won"`
		Lost    int64 `json:"lost"`
	} `json:"tickets"`
}

type ServerService struct{}

func (s *ServerService) GetStatus(lastStatus *Status) *Status {
	now := time.Now()
	status := &Status{
		T: now,
	}

	percents, err := cpu.Percent(0, false)
	if err != nil {
		logger.Warning("get cpu percent failed:", err)
	} else if len(percents) > 0 {
		status.Cpu = percents[0]
	}

	upTime, err := host.Uptime()
	if err != nil {
		logger.Warning("get uptime failed:", err)
	} else {
		status.Uptime = upTime
	}

	memInfo, err := mem.VirtualMemory()
	if err != nil {
		logger.Warning("get virtual memory failed:", err)
	} else {
		status.Mem.Current = memInfo.Used
		status.Mem.Total = memInfo.Total
	}

	db := database.GetDB()
	counts := []struct {
		status model.TicketStatus
		dest   *int64
	}{
		{model.TicketStatusPending, &status.Tickets.Pending},
		{model.TicketStatusWon, &status.Tickets.Won},
		{model.TicketStatusLost, &status.Tickets.Lost},
	}
	for _, c := range counts {
		err := db.Model(model.Ticket{}).Where("status = ?", c.status).Count(c.dest).Error
		if err != nil {
			logger.Warning("count tickets failed:", err)
		}
	}

	return status
}

// GetDb returns the database file for a backup download. The WAL is
// checkpointed first so the file holds every committed ticket transition.
func (s *ServerService) GetDb() ([]byte, error) {
	err := database.Checkpoint()
	if err != nil {
		return nil, err
	}

	file, err := os.Open(config.GetDBPath())
	if err != nil {
		return nil, err
	}
	defer file.Close()

	isValidDb, err := database.IsSQLiteDB(file)
	if err != nil {
		return nil, common.NewErrorf("check db file format failed: %v", err)
	}
	if !isValidDb {
		return nil, common.NewError("invalid db file format")
	}
	if _, err := file.Seek(0, 0); err != nil {
		return nil, err
	}

	return io.ReadAll(file)
}
