package repositories

import (
	"BayHospital/models"
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdmitAssignsSequentialQueueNumbers(t *testing.T) {
	setupTestStore(t)
	createTestDoctor(t, "dr-a")
	schedule := createTestSchedule(t, "dr-a", testDay(), models.TimeSlotMorning, 2, true)

	repo := NewAppointmentRepository(nil)
	ctx := context.Background()

	first, err := repo.Admit(ctx, schedule.ID, testPatient(1))
	require.NoError(t, err)
	assert.Equal(t, 1, first.QueueNumber)
	assert.Equal(t, models.StatusConfirmed, first.Status)

	second, err := repo.Admit(ctx, schedule.ID, testPatient(2))
	require.NoError(t, err)
	assert.Equal(t, 2, second.QueueNumber)

	// Slot is at capacity now.
	_, err = repo.Admit(ctx, schedule.ID, testPatient(3))
	assert.ErrorIs(t, err, models.ErrScheduleFull)

	// Cancelling frees capacity but the freed queue number is never
	// handed out again.
	identity := PatientIdentity{IDNumber: testPatient(1).IDNumber, Phone: testPatient(1).Phone}
	require.NoError(t, repo.Cancel(ctx, first.ID, identity))

	fourth, err := repo.Admit(ctx, schedule.ID, testPatient(4))
	require.NoError(t, err)
	assert.Equal(t, 3, fourth.QueueNumber)
}

func TestAdmitRejectsUnknownOrUnavailableSchedule(t *testing.T) {
	setupTestStore(t)
	createTestDoctor(t, "dr-a")
	hidden := createTestSchedule(t, "dr-a", testDay(), models.TimeSlotEvening, 5, false)

	repo := NewAppointmentRepository(nil)
	ctx := context.Background()

	_, err := repo.Admit(ctx, "missing-schedule", testPatient(1))
	assert.ErrorIs(t, err, models.ErrScheduleNotFound)

	_, err = repo.Admit(ctx, hidden.ID, testPatient(1))
	assert.ErrorIs(t, err, models.ErrScheduleNotFound)
}

func TestAdmitRejectsDuplicateActiveBooking(t *testing.T) {
	setupTestStore(t)
	createTestDoctor(t, "dr-a")
	schedule := createTestSchedule(t, "dr-a", testDay(), models.TimeSlotMorning, 5, true)

	repo := NewAppointmentRepository(nil)
	ctx := context.Background()

	patient := testPatient(1)
	first, err := repo.Admit(ctx, schedule.ID, patient)
	require.NoError(t, err)

	_, err = repo.Admit(ctx, schedule.ID, patient)
	assert.ErrorIs(t, err, models.ErrDuplicateAppointment)

	// A cancelled booking is terminal; the patient books again with a
	// brand-new booking and a fresh queue number.
	identity := PatientIdentity{IDNumber: patient.IDNumber, Phone: patient.Phone}
	require.NoError(t, repo.Cancel(ctx, first.ID, identity))

	again, err := repo.Admit(ctx, schedule.ID, patient)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, again.ID)
	assert.Equal(t, 2, again.QueueNumber)
}

func TestConcurrentAdmissionsNeverExceedCapacity(t *testing.T) {
	setupTestStore(t)
	createTestDoctor(t, "dr-a")
	schedule := createTestSchedule(t, "dr-a", testDay(), models.TimeSlotMorning, 3, true)

	repo := NewAppointmentRepository(nil)
	ctx := context.Background()

	const contenders = 10
	results := make([]error, contenders)
	var wg sync.WaitGroup
	wg.Add(contenders)
	for i := 0; i < contenders; i++ {
		go func(i int) {
			defer wg.Done()
			_, err := repo.Admit(ctx, schedule.ID, testPatient(i))
			results[i] = err
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range results {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, models.ErrScheduleFull)
		}
	}
	assert.Equal(t, 3, successes)

	occupancy, err := NewScheduleRepository(nil).Occupancy(ctx, schedule.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), occupancy)
}

func TestTransferMovesBookingAtomically(t *testing.T) {
	setupTestStore(t)
	createTestDoctor(t, "dr-a")
	source := createTestSchedule(t, "dr-a", testDay(), models.TimeSlotMorning, 1, true)
	target := createTestSchedule(t, "dr-a", testDay(), models.TimeSlotAfternoon, 1, true)

	appointments := NewAppointmentRepository(nil)
	schedules := NewScheduleRepository(nil)
	ctx := context.Background()

	patient := testPatient(1)
	booking, err := appointments.Admit(ctx, source.ID, patient)
	require.NoError(t, err)

	identity := PatientIdentity{IDNumber: patient.IDNumber, Phone: patient.Phone}
	moved, err := appointments.Transfer(ctx, booking.ID, &identity, target.ID)
	require.NoError(t, err)

	assert.Equal(t, booking.ID, moved.ID)
	assert.Equal(t, target.ID, moved.ScheduleID)
	assert.Equal(t, 1, moved.QueueNumber)
	assert.Equal(t, models.StatusConfirmed, moved.Status)

	sourceOccupancy, err := schedules.Occupancy(ctx, source.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), sourceOccupancy)

	targetOccupancy, err := schedules.Occupancy(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), targetOccupancy)
}

func TestTransferRejectsFullTarget(t *testing.T) {
	setupTestStore(t)
	createTestDoctor(t, "dr-a")
	source := createTestSchedule(t, "dr-a", testDay(), models.TimeSlotMorning, 1, true)
	target := createTestSchedule(t, "dr-a", testDay(), models.TimeSlotAfternoon, 1, true)

	appointments := NewAppointmentRepository(nil)
	ctx := context.Background()

	booking, err := appointments.Admit(ctx, source.ID, testPatient(1))
	require.NoError(t, err)
	_, err = appointments.Admit(ctx, target.ID, testPatient(2))
	require.NoError(t, err)

	_, err = appointments.Transfer(ctx, booking.ID, nil, target.ID)
	assert.ErrorIs(t, err, models.ErrScheduleFull)

	// The failed transfer left the booking untouched.
	unchanged, err := appointments.GetByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, source.ID, unchanged.ScheduleID)
	assert.Equal(t, 1, unchanged.QueueNumber)
}

func TestTransferVerifiesIdentity(t *testing.T) {
	setupTestStore(t)
	createTestDoctor(t, "dr-a")
	source := createTestSchedule(t, "dr-a", testDay(), models.TimeSlotMorning, 1, true)
	target := createTestSchedule(t, "dr-a", testDay(), models.TimeSlotAfternoon, 1, true)

	appointments := NewAppointmentRepository(nil)
	ctx := context.Background()

	booking, err := appointments.Admit(ctx, source.ID, testPatient(1))
	require.NoError(t, err)

	wrong := PatientIdentity{IDNumber: "wrong", Phone: "wrong"}
	_, err = appointments.Transfer(ctx, booking.ID, &wrong, target.ID)
	assert.ErrorIs(t, err, models.ErrForbidden)

	_, err = appointments.Transfer(ctx, "missing-booking", nil, target.ID)
	assert.ErrorIs(t, err, models.ErrAppointmentNotFound)
}

func TestCancelIsIdempotent(t *testing.T) {
	setupTestStore(t)
	createTestDoctor(t, "dr-a")
	schedule := createTestSchedule(t, "dr-a", testDay(), models.TimeSlotMorning, 1, true)

	repo := NewAppointmentRepository(nil)
	ctx := context.Background()

	patient := testPatient(1)
	booking, err := repo.Admit(ctx, schedule.ID, patient)
	require.NoError(t, err)

	identity := PatientIdentity{IDNumber: patient.IDNumber, Phone: patient.Phone}
	require.NoError(t, repo.Cancel(ctx, booking.ID, identity))
	require.NoError(t, repo.Cancel(ctx, booking.ID, identity))

	cancelled, err := repo.GetByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)
}

func TestCancelVerifiesIdentity(t *testing.T) {
	setupTestStore(t)
	createTestDoctor(t, "dr-a")
	schedule := createTestSchedule(t, "dr-a", testDay(), models.TimeSlotMorning, 1, true)

	repo := NewAppointmentRepository(nil)
	ctx := context.Background()

	booking, err := repo.Admit(ctx, schedule.ID, testPatient(1))
	require.NoError(t, err)

	err = repo.Cancel(ctx, booking.ID, PatientIdentity{IDNumber: "wrong", Phone: "wrong"})
	assert.ErrorIs(t, err, models.ErrForbidden)

	err = repo.Cancel(ctx, "missing-booking", PatientIdentity{IDNumber: "x", Phone: "y"})
	assert.ErrorIs(t, err, models.ErrAppointmentNotFound)

	// A mismatch never cancels.
	still, err := repo.GetByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, still.Status)
}

func TestLookupReturnsFullHistory(t *testing.T) {
	setupTestStore(t)
	createTestDoctor(t, "dr-a")
	morning := createTestSchedule(t, "dr-a", testDay(), models.TimeSlotMorning, 2, true)
	afternoon := createTestSchedule(t, "dr-a", testDay(), models.TimeSlotAfternoon, 2, true)

	repo := NewAppointmentRepository(nil)
	ctx := context.Background()

	patient := testPatient(1)
	identity := PatientIdentity{IDNumber: patient.IDNumber, Phone: patient.Phone}

	first, err := repo.Admit(ctx, morning.ID, patient)
	require.NoError(t, err)
	require.NoError(t, repo.Cancel(ctx, first.ID, identity))
	_, err = repo.Admit(ctx, afternoon.ID, patient)
	require.NoError(t, err)

	history, err := repo.Lookup(ctx, identity)
	require.NoError(t, err)
	require.Len(t, history, 2)

	// Cancelled bookings stay queryable as history.
	statuses := []string{history[0].Status, history[1].Status}
	assert.Contains(t, statuses, models.StatusCancelled)
	assert.Contains(t, statuses, models.StatusConfirmed)

	none, err := repo.Lookup(ctx, PatientIdentity{IDNumber: "unknown", Phone: "unknown"})
	require.NoError(t, err)
	assert.Empty(t, none)
}
