package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/filasync/pkg/errors"
)

func TestNotFoundError(t *testing.T) {
	err := errors.NewNotFoundError("printer", "kobra3")
	assert.Equal(t, "printer kobra3 not found", err.Error())
	assert.True(t, errors.IsNotFound(err))
	assert.True(t, stderrors.Is(err, errors.ErrNotFound))
	assert.False(t, errors.IsPrinterUnavailable(err))
}

func TestValidationError(t *testing.T) {
	err := errors.NewValidationError("host", "", "must not be empty")
	assert.Equal(t, "validation failed for field host: must not be empty", err.Error())
	assert.True(t, errors.IsValidationError(err))

	bare := errors.NewValidationError("", nil, "bad input")
	assert.Equal(t, "validation failed: bad input", bare.Error())
}

func TestStructureError(t *testing.T) {
	err := errors.NewStructureError("database", "result.list", "an array", "got object")
	assert.Contains(t, err.Error(), "result.list is not an array")
	assert.True(t, errors.IsValidationError(err))

	noPath := errors.NewStructureError("options", "", "", "not an object")
	assert.Equal(t, "malformed options document: not an object", noPath.Error())
}

func TestIdentityError(t *testing.T) {
	cause := stderrors.New("invalid character")
	err := errors.NewIdentityError("MyFilament", "notes are not valid JSON", cause)
	assert.Contains(t, err.Error(), "MyFilament")
	assert.Equal(t, cause, stderrors.Unwrap(err))
	assert.True(t, errors.IsValidationError(err))
}

func TestResolveError(t *testing.T) {
	err := errors.NewResolveError("My PLA", "fdm_filament_pla", "system template not found", nil)
	assert.Contains(t, err.Error(), `template "fdm_filament_pla"`)

	noTemplate := errors.NewResolveError("My PLA", "", "no inherits field", nil)
	assert.Equal(t, "failed to resolve preset My PLA: no inherits field", noTemplate.Error())
}

func TestTransportError(t *testing.T) {
	cause := stderrors.New("connection refused")

	connect := errors.NewTransportError("connect", "192.168.1.50", "", cause)
	assert.True(t, errors.IsPrinterUnavailable(connect))
	assert.Equal(t, cause, stderrors.Unwrap(connect))

	write := errors.NewTransportError("write", "192.168.1.50", "/useremain/app/gk/material_database.json", cause)
	assert.False(t, errors.IsPrinterUnavailable(write))
	assert.Contains(t, write.Error(), "/useremain/app/gk/material_database.json")
}

func TestConfigError(t *testing.T) {
	err := errors.NewConfigError("printers", "no authentication method configured", nil)
	assert.Equal(t, "configuration error in printers: no authentication method configured", err.Error())
}

func TestWrapHelpers(t *testing.T) {
	assert.NoError(t, errors.WrapIO("read", "/tmp/x", nil))
	assert.NoError(t, errors.WrapParse("json", "x.json", nil))
	assert.NoError(t, errors.WrapTransport("read", "host", "/p", nil))

	cause := stderrors.New("boom")
	wrapped := errors.WrapIO("write", "/tmp/x", cause)
	var ioErr *errors.IOError
	assert.True(t, stderrors.As(wrapped, &ioErr))
	assert.Equal(t, "write", ioErr.Operation)
	assert.Equal(t, cause, stderrors.Unwrap(wrapped))
}

func TestSentinelDistinctness(t *testing.T) {
	sentinels := []error{
		errors.ErrNotFound,
		errors.ErrInvalidInput,
		errors.ErrPrinterUnavailable,
		errors.ErrTimeout,
		errors.ErrCanceled,
		errors.ErrNoPresets,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.NotErrorIs(t, a, b)
		}
	}
}
