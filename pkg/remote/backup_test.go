package remote_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	faerrors "github.com/agentstation/filasync/pkg/errors"
	"github.com/agentstation/filasync/pkg/remote"
)

type fakeTransport struct {
	files   map[string][]byte
	readErr error
}

func (f *fakeTransport) Read(_ context.Context, path string) ([]byte, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	data, ok := f.files[path]
	if !ok {
		return nil, &faerrors.NotFoundError{Resource: "remote file", ID: path}
	}
	return data, nil
}

func (f *fakeTransport) WriteAtomic(_ context.Context, path string, data []byte) error {
	if f.files == nil {
		f.files = map[string][]byte{}
	}
	f.files[path] = data
	return nil
}

func (f *fakeTransport) Close() error { return nil }

func TestBackupWritesTimestampedCopy(t *testing.T) {
	dir := t.TempDir()
	ft := &fakeTransport{files: map[string][]byte{
		"/useremain/app/gk/material_database.json": []byte(`{"result": {}}`),
	}}

	err := remote.Backup(context.Background(), ft, "/useremain/app/gk/material_database.json", dir)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	name := entries[0].Name()
	assert.True(t, strings.HasPrefix(name, "material_database-"))
	assert.True(t, strings.HasSuffix(name, ".json"))

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, `{"result": {}}`, string(data))
}

func TestBackupSkipsMissingRemoteFile(t *testing.T) {
	dir := t.TempDir()
	ft := &fakeTransport{}

	err := remote.Backup(context.Background(), ft, "/useremain/app/gk/material_option.json", dir)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestBackupSkipsOnReadError(t *testing.T) {
	dir := t.TempDir()
	ft := &fakeTransport{readErr: errors.New("connection reset")}

	err := remote.Backup(context.Background(), ft, "/useremain/app/gk/material_database.json", dir)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
