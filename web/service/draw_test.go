package service_test

import (
	"testing"
	"time"

	"lotto-ui/database/model"
	"lotto-ui/web/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddDraw(t *testing.T) {
	setUpTestDB(t)
	drawService := &service.DrawService{}

	draw := &model.Draw{
		DrawNumber: "25690101",
		DrawDate:   time.Now(),
		// round left empty on purpose
		Status: model.DrawStatusCompleted,
	}
	require.NoError(t, drawService.AddDraw(draw))

	stored, err := drawService.GetDraw(draw.Id)
	require.NoError(t, err)
	assert.Equal(t, model.DrawRoundMorning, stored.Round)
	// new draws always open as pending regardless of the submitted status
	assert.Equal(t, model.DrawStatusPending, stored.Status)
}

func TestAddDrawValidation(t *testing.T) {
	setUpTestDB(t)
	drawService := &service.DrawService{}

	assert.Error(t, drawService.AddDraw(&model.Draw{DrawNumber: "2569-01"}))
	assert.Error(t, drawService.AddDraw(&model.Draw{DrawNumber: "25690101", Round: "midnight"}))

	// duplicate draw number
	require.NoError(t, drawService.AddDraw(&model.Draw{DrawNumber: "25690116"}))
	assert.Error(t, drawService.AddDraw(&model.Draw{DrawNumber: "25690116"}))
}

func TestCancelDraw(t *testing.T) {
	setUpTestDB(t)
	drawService := &service.DrawService{}

	draw := addTestDraw(t, "25690101")
	require.NoError(t, drawService.CancelDraw(draw.Id))

	stored, err := drawService.GetDraw(draw.Id)
	require.NoError(t, err)
	assert.Equal(t, model.DrawStatusCancelled, stored.Status)

	// completed draws stay completed
	completed := addTestDraw(t, "25690116")
	require.NoError(t, drawService.CompleteDraw(nil, completed.Id))
	require.NoError(t, drawService.CancelDraw(completed.Id))

	stored, err = drawService.GetDraw(completed.Id)
	require.NoError(t, err)
	assert.Equal(t, model.DrawStatusCompleted, stored.Status)
}

func TestGetDraws(t *testing.T) {
	setUpTestDB(t)
	drawService := &service.DrawService{}

	older := &model.Draw{DrawNumber: "25690101", DrawDate: time.Now().Add(-15 * 24 * time.Hour)}
	newer := &model.Draw{DrawNumber: "25690116", DrawDate: time.Now()}
	require.NoError(t, drawService.AddDraw(older))
	require.NoError(t, drawService.AddDraw(newer))

	draws, err := drawService.GetDraws()
	require.NoError(t, err)
	require.Len(t, draws, 2)
	assert.Equal(t, "25690116", draws[0].DrawNumber)

	_, err = drawService.GetDraw(9999)
	assert.ErrorIs(t, err, service.ErrDrawNotFound)
}
