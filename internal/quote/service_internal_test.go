package quote

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/aumatic/backend-quote/internal/common"
)

func TestInsertErrorMapsUniqueViolation(t *testing.T) {
	err := insertError(&pgconn.PgError{Code: "23505", ConstraintName: "quotes_submission_key_idx"})

	var appErr *common.AppError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, "DUPLICATE_SUBMISSION", appErr.Code)
	require.Equal(t, http.StatusConflict, appErr.HTTPStatus)
}

func TestInsertErrorWrapsOtherErrors(t *testing.T) {
	cause := errors.New("connection reset by peer")
	err := insertError(cause)

	require.False(t, common.IsAppError(err))
	require.ErrorIs(t, err, cause)
}
