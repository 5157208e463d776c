package refparse_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/refparse"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := refparse.Errorf(refparse.EUNSUPPORTED, "unknown encoding: %s", "bogus-enc-9999")

	assert.Equal(t, refparse.EUNSUPPORTED, refparse.ErrorCode(err))
	assert.Equal(t, "unknown encoding: bogus-enc-9999", refparse.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, refparse.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, refparse.EINTERNAL, refparse.ErrorCode(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, refparse.ErrorMessage(nil))
}
