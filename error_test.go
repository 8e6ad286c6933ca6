package versefill_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/versefill"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := versefill.Errorf(versefill.ENOTFOUND, "verse %q not found", "Rom. 8:2")

	assert.Equal(t, versefill.ENOTFOUND, versefill.ErrorCode(err))
	assert.Equal(t, "verse \"Rom. 8:2\" not found", versefill.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, versefill.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, versefill.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("lookup: %w", versefill.Errorf(versefill.EUNAVAILABLE, "datastore down"))

	assert.Equal(t, versefill.EUNAVAILABLE, versefill.ErrorCode(err))
	assert.Equal(t, "datastore down", versefill.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("boom")

	assert.Equal(t, versefill.EINTERNAL, versefill.ErrorCode(err))
	assert.Equal(t, "Internal error.", versefill.ErrorMessage(err))
}
