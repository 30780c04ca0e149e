package iofs

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnioc/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	originalErr := errors.New("permission denied")

	tests := []struct {
		name string
		err  error
		code gn.ErrorCode
		path string
		text string
	}{
		{
			name: "CreateDirError",
			err:  CreateDirError("/test/dir", originalErr),
			code: errcode.CreateDirError,
			path: "/test/dir",
			text: "cannot create directory /test/dir",
		},
		{
			name: "CopyFileError",
			err:  CopyFileError("/test/config.yaml", originalErr),
			code: errcode.CopyFileError,
			path: "/test/config.yaml",
			text: "cannot write config /test/config.yaml",
		},
		{
			name: "ReadFileError",
			err:  ReadFileError("/test/config.yaml", originalErr),
			code: errcode.ReadFileError,
			path: "/test/config.yaml",
			text: "cannot read config /test/config.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gnErr, ok := tt.err.(*gn.Error)
			require.True(t, ok, "Error should be of type *gn.Error")

			assert.Equal(t, tt.code, gnErr.Code)
			assert.Contains(t, gnErr.Msg, "%s")
			require.Len(t, gnErr.Vars, 1)
			assert.Equal(t, tt.path, gnErr.Vars[0])

			assert.ErrorIs(t, gnErr.Err, originalErr)
			assert.Contains(t, gnErr.Err.Error(), tt.text)
			// caller context from runtime.Caller
			assert.Contains(t, gnErr.Err.Error(), "from ")
			assert.Contains(t, gnErr.Err.Error(), "iofs.TestErrors")
		})
	}
}
