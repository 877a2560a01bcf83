package adapter

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/leapstack-labs/schemagraph/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReader records lifecycle calls for Extract tests.
type fakeReader struct {
	connectErr error
	readErr    error
	closeErr   error
	schema     *core.Schema

	connected bool
	closed    int
}

func (f *fakeReader) Connect(_ context.Context, _ Config) error {
	if f.connectErr != nil {
		return f.connectErr
	}
	f.connected = true
	return nil
}

func (f *fakeReader) Close() error {
	f.closed++
	return f.closeErr
}

func (f *fakeReader) ReadSchema(_ context.Context) (*core.Schema, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.schema, nil
}

func TestUnknownReaderError_Error(t *testing.T) {
	err := &UnknownReaderError{
		Type:      "fake_db",
		Available: []string{"postgres", "sqlite"},
	}

	msg := err.Error()
	assert.Contains(t, msg, "fake_db", "error should mention the unknown type")
	assert.Contains(t, msg, "sqlite", "error should list available readers")
	assert.Contains(t, msg, "schemagraph.yaml", "error should mention config file")
}

func TestRegister(t *testing.T) {
	Register("test_reader_internal", func(_ *slog.Logger) Reader { return nil })

	assert.True(t, IsRegistered("test_reader_internal"))
	assert.Contains(t, ListReaders(), "test_reader_internal")

	factory, ok := Get("test_reader_internal")
	assert.True(t, ok)
	assert.NotNil(t, factory)
}

func TestNewReader_Errors(t *testing.T) {
	_, err := NewReader(Config{}, nil)
	require.Error(t, err)
	assert.Equal(t, "reader type not specified", err.Error())

	_, err = NewReader(Config{Type: "definitely_not_registered"}, nil)
	var unknown *UnknownReaderError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "definitely_not_registered", unknown.Type)
}

func TestExtract(t *testing.T) {
	want := core.NewSchema(core.Table{Name: "users"})

	tests := []struct {
		name      string
		reader    *fakeReader
		expectErr string
	}{
		{
			name:   "success",
			reader: &fakeReader{schema: want},
		},
		{
			name:      "connect fails",
			reader:    &fakeReader{connectErr: errors.New("no such file")},
			expectErr: "failed to connect",
		},
		{
			name:      "read fails",
			reader:    &fakeReader{readErr: errors.New("locked")},
			expectErr: "failed to read schema",
		},
		{
			name:      "close fails after read",
			reader:    &fakeReader{schema: want, closeErr: errors.New("busy")},
			expectErr: "failed to close",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ := "fake_" + tt.name
			Register(typ, func(_ *slog.Logger) Reader { return tt.reader })

			schema, err := Extract(context.Background(), Config{Type: typ}, nil)
			assert.Equal(t, 1, tt.reader.closed, "reader must be closed exactly once")

			if tt.expectErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Same(t, want, schema)
		})
	}
}
