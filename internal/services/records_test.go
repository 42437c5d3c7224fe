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

func TestCreateClientRequiresName(t *testing.T) {
	svc := services.NewRecordService(store.New(testutil.NewDB(t)), nil)

	_, err := svc.CreateClient(context.Background(), services.CreateClientInput{Website: "https://acme.example"})

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.KindInvalidInput, appErr.Kind)
	assert.Equal(t, "Client name required", appErr.Message)
}

func TestCreateClientRecordsTimelineEvent(t *testing.T) {
	ctx := context.Background()
	svc := services.NewRecordService(store.New(testutil.NewDB(t)), nil)

	client, err := svc.CreateClient(ctx, services.CreateClientInput{Name: " Acme <script>x</script>", Website: "https://acme.example"})
	require.NoError(t, err)
	assert.Equal(t, "Acme", client.Name)

	events, err := svc.ClientTimeline(ctx, client.ID, 50)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, models.EventClientCreated, events[0].Type)
}

func TestClientTimelineUnknownClient(t *testing.T) {
	svc := services.NewRecordService(store.New(testutil.NewDB(t)), nil)

	_, err := svc.ClientTimeline(context.Background(), 7, 50)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestCreateProjectValidation(t *testing.T) {
	svc := services.NewRecordService(store.New(testutil.NewDB(t)), nil)
	ctx := context.Background()

	_, err := svc.CreateProject(ctx, services.CreateProjectInput{ClientID: 1})
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "title", appErr.Field)

	_, err = svc.CreateProject(ctx, services.CreateProjectInput{Title: "Site"})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "clientId", appErr.Field)

	_, err = svc.CreateProject(ctx, services.CreateProjectInput{Title: "Site", ClientID: 99})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.KindInvalidInput, appErr.Kind)
	assert.Equal(t, "clientId", appErr.Field)
}

func TestCreateProjectAndTicket(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.NewDB(t)
	svc := services.NewRecordService(store.New(gdb), nil)

	client, err := svc.CreateClient(ctx, services.CreateClientInput{Name: "Acme"})
	require.NoError(t, err)

	project, err := svc.CreateProject(ctx, services.CreateProjectInput{Title: "Site", ClientID: client.ID})
	require.NoError(t, err)

	ticket, err := svc.CreateTicket(ctx, services.CreateTicketInput{
		ClientID:  client.ID,
		ProjectID: &project.ID,
		Subject:   "Broken form",
		Message:   "Contact form returns 500",
	})
	require.NoError(t, err)
	assert.NotZero(t, ticket.ID)

	assert.Equal(t, int64(3), testutil.Count(t, gdb, &models.TimelineEvent{}))

	err = svc.DeleteClient(ctx, client.ID)
	assert.True(t, errors.Is(err, apperrors.ErrConflict))

	tickets, err := svc.ListTickets(ctx)
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	require.NotNil(t, tickets[0].Client)
	assert.Equal(t, "Acme", tickets[0].Client.Name)
}

func TestCreateTicketRequiresFields(t *testing.T) {
	svc := services.NewRecordService(store.New(testutil.NewDB(t)), nil)

	_, err := svc.CreateTicket(context.Background(), services.CreateTicketInput{ClientID: 1, Subject: "Hi"})

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "message", appErr.Field)
}

func TestCreateTicketRejectsOtherClientsProject(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.NewDB(t)
	svc := services.NewRecordService(store.New(gdb), nil)

	acme, err := svc.CreateClient(ctx, services.CreateClientInput{Name: "Acme"})
	require.NoError(t, err)
	globex, err := svc.CreateClient(ctx, services.CreateClientInput{Name: "Globex"})
	require.NoError(t, err)

	project, err := svc.CreateProject(ctx, services.CreateProjectInput{Title: "Globex Site", ClientID: globex.ID})
	require.NoError(t, err)

	_, err = svc.CreateTicket(ctx, services.CreateTicketInput{
		ClientID:  acme.ID,
		ProjectID: &project.ID,
		Subject:   "Wrong project",
		Message:   "Filed against someone else's site",
	})

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.KindInvalidInput, appErr.Kind)
	assert.Equal(t, "projectId", appErr.Field)
	assert.Zero(t, testutil.Count(t, gdb, &models.Ticket{}))
	assert.Equal(t, int64(3), testutil.Count(t, gdb, &models.TimelineEvent{}))
}
