package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rental-system/internal/entities"
	"rental-system/internal/repositories"
)

func TestBuildFeedContainsUpcomingEvents(t *testing.T) {
	eventRepo := newFakeEventRepo()
	eventRepo.upcoming = []repositories.EventWithEquipment{
		{
			Event: entities.Event{
				ID:       3,
				Name:     "Городской фестиваль",
				Date:     time.Date(2026, 9, 20, 10, 0, 0, 0, time.UTC),
				Location: null.StringFrom("Центральный парк"),
			},
			EquipmentNames: []string{"Сцена", "Колонка JBL"},
		},
	}

	svc := NewCalendarService(eventRepo, zap.NewNop())
	feed, err := svc.BuildFeed(context.Background())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(feed, "BEGIN:VCALENDAR"))
	assert.Contains(t, feed, "METHOD:PUBLISH")
	assert.Contains(t, feed, "event-3@rental-system")
	assert.Contains(t, feed, "Городской фестиваль")
	assert.Contains(t, feed, "Центральный парк")
	assert.Contains(t, feed, "END:VCALENDAR")
}

func TestBuildFeedEmpty(t *testing.T) {
	svc := NewCalendarService(newFakeEventRepo(), zap.NewNop())

	feed, err := svc.BuildFeed(context.Background())
	require.NoError(t, err)
	assert.Contains(t, feed, "BEGIN:VCALENDAR")
	assert.NotContains(t, feed, "BEGIN:VEVENT")
}
