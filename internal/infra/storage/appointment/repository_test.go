package appointment

import (
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/pgerrors"
	"github.com/m04kA/SMC-BarberService/pkg/psqlbuilder"
)

func TestApplyFilter(t *testing.T) {
	clientID := int64(42)
	from := time.Date(2030, 5, 6, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	filter := domain.AppointmentFilter{
		BarberIDs: []int64{1, 2},
		ClientID:  &clientID,
		From:      &from,
		To:        &to,
		Statuses:  domain.ActiveStatuses,
	}

	query, args, err := applyFilter(psqlbuilder.Select("id").From(table), filter).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT id FROM appointments WHERE barber_id IN ($1,$2) AND client_id = $3 AND start_at >= $4 AND start_at < $5 AND status IN ($6,$7)",
		query,
	)
	assert.Equal(t, []interface{}{int64(1), int64(2), int64(42), from, to, "pending", "confirmed"}, args)
}

func TestApplyFilter_Empty(t *testing.T) {
	query, args, err := applyFilter(psqlbuilder.Select("id").From(table), domain.AppointmentFilter{}).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT id FROM appointments", query)
	assert.Empty(t, args)
}

func TestCreateError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    error
		notWant error
	}{
		{"exclusion violation", &pq.Error{Code: pgerrors.CodeExclusionViolation, Constraint: "appointments_no_overlap"}, ErrOverlap, ErrExecQuery},
		{"serialization failure", &pq.Error{Code: pgerrors.CodeSerializationFailure}, pgerrors.ErrSerializationFailure, ErrOverlap},
		{"deadlock", &pq.Error{Code: pgerrors.CodeDeadlockDetected}, pgerrors.ErrSerializationFailure, ErrOverlap},
		{"foreign key", &pq.Error{Code: "23503"}, ErrExecQuery, ErrOverlap},
		{"connection lost", errors.New("driver: bad connection"), ErrExecQuery, ErrOverlap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := createError(tt.err)
			assert.ErrorIs(t, err, tt.want)
			assert.NotErrorIs(t, err, tt.notWant)
		})
	}
}
