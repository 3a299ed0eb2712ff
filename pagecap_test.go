package pagecap_test

import (
	"errors"
	"testing"

	"github.com/pagecap/pagecap"
	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	t.Parallel()
	err := pagecap.Errorf(pagecap.ECLOSED, "browser session ended")
	assert.Equal(t, pagecap.ECLOSED, pagecap.ErrorCode(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()
	assert.Empty(t, pagecap.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()
	assert.Equal(t, pagecap.EINTERNAL, pagecap.ErrorCode(errors.New("boom")))
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()
	err := pagecap.Errorf(pagecap.EIO, "disk full")
	assert.Equal(t, "disk full", pagecap.ErrorMessage(err))
	assert.Equal(t, "Internal error.", pagecap.ErrorMessage(errors.New("boom")))
}
