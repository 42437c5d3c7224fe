package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/noble-it/hub/internal/apperrors"
	"github.com/noble-it/hub/internal/models"
	"github.com/noble-it/hub/internal/services"
	"github.com/noble-it/hub/internal/store"
	"github.com/noble-it/hub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIncidentService(t *testing.T) (*services.IncidentService, *fakeNotifier) {
	t.Helper()

	notifier := &fakeNotifier{}
	return services.NewIncidentService(store.New(testutil.NewDB(t)), notifier, nil), notifier
}

func TestCreateIncidentRequiresTitle(t *testing.T) {
	svc, notifier := newIncidentService(t)

	_, err := svc.Create(context.Background(), services.CreateIncidentInput{Title: "  <i></i> "})

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.KindInvalidInput, appErr.Kind)
	assert.Equal(t, "title", appErr.Field)
	assert.Empty(t, notifier.opened)
}

func TestCreateIncidentStartsNowAndNotifies(t *testing.T) {
	ctx := context.Background()
	svc, notifier := newIncidentService(t)

	incident, err := svc.Create(ctx, services.CreateIncidentInput{Title: "API latency", Impact: "degraded"})
	require.NoError(t, err)

	assert.NotZero(t, incident.ID)
	assert.False(t, incident.StartedAt.IsZero())
	assert.True(t, incident.Active())
	assert.Equal(t, []uint{incident.ID}, notifier.opened)

	incidents, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, incidents, 1)
	assert.Equal(t, "API latency", incidents[0].Title)
}

func TestCreateIncidentSurvivesNotifierFailure(t *testing.T) {
	svc, notifier := newIncidentService(t)
	notifier.err = errors.New("discord: webhook returned status 500")

	incident, err := svc.Create(context.Background(), services.CreateIncidentInput{Title: "Outage"})
	require.NoError(t, err)
	assert.NotZero(t, incident.ID)
}

func TestResolveIncidentTwiceKeepsFirstTimestamp(t *testing.T) {
	ctx := context.Background()
	svc, notifier := newIncidentService(t)

	incident, err := svc.Create(ctx, services.CreateIncidentInput{Title: "Outage"})
	require.NoError(t, err)

	first, err := svc.Resolve(ctx, incident.ID)
	require.NoError(t, err)
	require.NotNil(t, first.ResolvedAt)

	second, err := svc.Resolve(ctx, incident.ID)
	require.NoError(t, err)
	require.NotNil(t, second.ResolvedAt)

	assert.True(t, first.ResolvedAt.Equal(*second.ResolvedAt))
	assert.Equal(t, []uint{incident.ID}, notifier.resolved)
}

func TestResolveUnknownIncident(t *testing.T) {
	svc, notifier := newIncidentService(t)

	_, err := svc.Resolve(context.Background(), 42)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.Empty(t, notifier.resolved)
}

func TestResolveIncidentRecordsClientTimeline(t *testing.T) {
	ctx := context.Background()
	f := newOnboardingFixture(t, nil)

	result, err := f.service.Onboard(ctx, services.OnboardingRequest{
		Client:   services.OnboardingClient{Name: "Acme"},
		Incident: &services.OnboardingIncident{Title: "Checkout down"},
	})
	require.NoError(t, err)
	require.NotNil(t, result.Incident)

	svc := services.NewIncidentService(f.store, f.notifier, nil)
	for i := 0; i < 2; i++ {
		_, err = svc.Resolve(ctx, result.Incident.ID)
		require.NoError(t, err)
	}

	events, err := f.store.ClientTimeline(ctx, result.Client.ID, 50)
	require.NoError(t, err)

	var resolved []models.TimelineEvent
	for _, event := range events {
		if event.Type == models.EventIncidentResolved {
			resolved = append(resolved, event)
		}
	}
	require.Len(t, resolved, 1)
	require.NotNil(t, resolved[0].IncidentID)
	assert.Equal(t, result.Incident.ID, *resolved[0].IncidentID)
	assert.Equal(t, "Incident resolved: Checkout down", resolved[0].Title)
}
