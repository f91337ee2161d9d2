package repositories

import (
	"BayHospital/models"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullDaySpecs() map[string]SlotSpec {
	return map[string]SlotSpec{
		models.TimeSlotMorning:   {Active: true, Max: 10, Start: "09:00", End: "12:00"},
		models.TimeSlotAfternoon: {Active: true, Max: 8, Start: "14:00", End: "17:00"},
		models.TimeSlotEvening:   {Active: false},
	}
}

func TestReplaceDayBuildsDeterministicSlotIDs(t *testing.T) {
	setupTestStore(t)
	createTestDoctor(t, "dr-a")

	repo := NewScheduleRepository(nil)
	ctx := context.Background()
	day := testDay()

	require.NoError(t, repo.ReplaceDay(ctx, "dr-a", day, fullDaySpecs()))

	slots, err := repo.ListByDoctor(ctx, "dr-a", nil, nil, false)
	require.NoError(t, err)
	require.Len(t, slots, 2)

	wantMorning := models.ScheduleID("dr-a", day, models.TimeSlotMorning)
	assert.Equal(t, wantMorning, slots[0].ID)
	assert.Equal(t, models.TimeSlotMorning, slots[0].TimeSlot)
	assert.Equal(t, 10, slots[0].MaxPatients)
	assert.Equal(t, models.TimeSlotAfternoon, slots[1].TimeSlot)

	// Replacing the same day again with the same specs is a clean swap,
	// not a unique-key collision.
	require.NoError(t, repo.ReplaceDay(ctx, "dr-a", day, fullDaySpecs()))
	slots, err = repo.ListByDoctor(ctx, "dr-a", nil, nil, false)
	require.NoError(t, err)
	assert.Len(t, slots, 2)
}

func TestReplaceDayRefusedWhileBookingsActive(t *testing.T) {
	setupTestStore(t)
	createTestDoctor(t, "dr-a")

	schedules := NewScheduleRepository(nil)
	appointments := NewAppointmentRepository(nil)
	ctx := context.Background()
	day := testDay()

	allWindows := map[string]SlotSpec{
		models.TimeSlotMorning:   {Active: true, Max: 10, Start: "09:00", End: "12:00"},
		models.TimeSlotAfternoon: {Active: true, Max: 8, Start: "14:00", End: "17:00"},
		models.TimeSlotEvening:   {Active: true, Max: 4, Start: "18:00", End: "21:00"},
	}
	require.NoError(t, schedules.ReplaceDay(ctx, "dr-a", day, allWindows))

	morningID := models.ScheduleID("dr-a", day, models.TimeSlotMorning)
	booking, err := appointments.Admit(ctx, morningID, testPatient(1))
	require.NoError(t, err)

	// One active booking on any slot of the day blocks the whole swap.
	newSpecs := map[string]SlotSpec{
		models.TimeSlotMorning:   {Active: false},
		models.TimeSlotAfternoon: {Active: false},
		models.TimeSlotEvening:   {Active: true, Max: 4, Start: "18:00", End: "21:00"},
	}
	err = schedules.ReplaceDay(ctx, "dr-a", day, newSpecs)
	assert.ErrorIs(t, err, models.ErrHasActiveAppointments)

	// The refused replacement changed nothing: all three slots survive
	// with their original capacities.
	slots, err := schedules.ListByDoctor(ctx, "dr-a", nil, nil, false)
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.Equal(t, models.TimeSlotMorning, slots[0].TimeSlot)
	assert.Equal(t, 10, slots[0].MaxPatients)
	assert.Equal(t, 8, slots[1].MaxPatients)

	// After the patient cancels, the swap goes through.
	identity := PatientIdentity{IDNumber: testPatient(1).IDNumber, Phone: testPatient(1).Phone}
	require.NoError(t, appointments.Cancel(ctx, booking.ID, identity))

	require.NoError(t, schedules.ReplaceDay(ctx, "dr-a", day, newSpecs))
	slots, err = schedules.ListByDoctor(ctx, "dr-a", nil, nil, false)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, models.TimeSlotEvening, slots[0].TimeSlot)

	// Replaced slots take their cancelled history with them.
	_, err = appointments.GetByID(ctx, booking.ID)
	assert.ErrorIs(t, err, models.ErrAppointmentNotFound)
}

func TestReplaceDayRejectsInvalidCapacity(t *testing.T) {
	setupTestStore(t)
	createTestDoctor(t, "dr-a")

	repo := NewScheduleRepository(nil)
	ctx := context.Background()

	specs := fullDaySpecs()
	specs[models.TimeSlotMorning] = SlotSpec{Active: true, Max: 0, Start: "09:00", End: "12:00"}

	err := repo.ReplaceDay(ctx, "dr-a", testDay(), specs)
	assert.ErrorIs(t, err, models.ErrInvalidCapacity)

	slots, err := repo.ListByDoctor(ctx, "dr-a", nil, nil, false)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestOccupancyCountsOnlyActiveBookings(t *testing.T) {
	setupTestStore(t)
	createTestDoctor(t, "dr-a")
	schedule := createTestSchedule(t, "dr-a", testDay(), models.TimeSlotMorning, 5, true)

	schedules := NewScheduleRepository(nil)
	appointments := NewAppointmentRepository(nil)
	ctx := context.Background()

	first, err := appointments.Admit(ctx, schedule.ID, testPatient(1))
	require.NoError(t, err)
	_, err = appointments.Admit(ctx, schedule.ID, testPatient(2))
	require.NoError(t, err)

	count, err := schedules.Occupancy(ctx, schedule.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	identity := PatientIdentity{IDNumber: testPatient(1).IDNumber, Phone: testPatient(1).Phone}
	require.NoError(t, appointments.Cancel(ctx, first.ID, identity))

	count, err = schedules.Occupancy(ctx, schedule.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	counts, err := schedules.OccupancyMap(ctx, []string{schedule.ID, "no-such-slot"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[schedule.ID])
	assert.Zero(t, counts["no-such-slot"])
}

func TestListByDoctorOrdersByDateAndWindow(t *testing.T) {
	setupTestStore(t)
	createTestDoctor(t, "dr-a")

	day := testDay()
	nextDay := day.Add(24 * time.Hour)
	// Created out of order on purpose.
	createTestSchedule(t, "dr-a", nextDay, models.TimeSlotMorning, 5, true)
	createTestSchedule(t, "dr-a", day, models.TimeSlotEvening, 5, true)
	createTestSchedule(t, "dr-a", day, models.TimeSlotMorning, 5, true)
	createTestSchedule(t, "dr-a", day, models.TimeSlotAfternoon, 5, false)

	repo := NewScheduleRepository(nil)
	ctx := context.Background()

	all, err := repo.ListByDoctor(ctx, "dr-a", nil, nil, false)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, models.TimeSlotMorning, all[0].TimeSlot)
	assert.Equal(t, models.TimeSlotAfternoon, all[1].TimeSlot)
	assert.Equal(t, models.TimeSlotEvening, all[2].TimeSlot)
	assert.True(t, all[3].Date.After(all[2].Date))

	// The public view hides the unavailable afternoon slot.
	public, err := repo.ListByDoctor(ctx, "dr-a", nil, nil, true)
	require.NoError(t, err)
	require.Len(t, public, 3)
	for _, slot := range public {
		assert.True(t, slot.IsAvailable)
	}

	// Range bounds are inclusive.
	bounded, err := repo.ListByDoctor(ctx, "dr-a", &day, &day, false)
	require.NoError(t, err)
	assert.Len(t, bounded, 3)
}
