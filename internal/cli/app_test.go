package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/backupsync/internal/config"
	"github.com/dmitrijs2005/backupsync/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient stubs the backup operation surface with canned results.
type fakeClient struct {
	checkErr      error
	reconciled    bool
	listNames     []string
	listRecipient string
	manifests     []string
	existsResult  bool
	downloadErr   error
	deleted       []string
	savedName     string
	savedBlob     []byte
}

func (f *fakeClient) CheckAvailability(context.Context) error { return f.checkErr }
func (f *fakeClient) ReconcileStartup(context.Context)        { f.reconciled = true }

func (f *fakeClient) ListAll(_ context.Context, recipientID string) ([]string, error) {
	f.listRecipient = recipientID
	return f.listNames, nil
}

func (f *fakeClient) ListManifestRecipients(context.Context) ([]string, error) {
	return f.manifests, nil
}

func (f *fakeClient) Exists(context.Context, string) (bool, error) {
	return f.existsResult, nil
}

func (f *fakeClient) DownloadTo(context.Context, string, string) error {
	return f.downloadErr
}

func (f *fakeClient) Delete(_ context.Context, recordNames ...string) error {
	f.deleted = recordNames
	return nil
}

func (f *fakeClient) Save(_ context.Context, blob []byte, name string) (string, error) {
	f.savedName = name
	f.savedBlob = blob
	return name, nil
}

func newTestApp(fc *fakeClient) (*App, *bytes.Buffer) {
	cfg := &config.Config{CallTimeout: 5 * time.Second}
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	var out bytes.Buffer
	return NewApp(cfg, fc, log, &out), &out
}

func TestRun_NoCommandPrintsUsage(t *testing.T) {
	app, out := newTestApp(&fakeClient{})
	err := app.Run(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, out.String(), "usage: backupsync")
}

func TestRun_UnknownCommand(t *testing.T) {
	app, _ := newTestApp(&fakeClient{})
	err := app.Run(context.Background(), []string{"frobnicate"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frobnicate")
}

func TestRun_Check(t *testing.T) {
	app, out := newTestApp(&fakeClient{})
	require.NoError(t, app.Run(context.Background(), []string{"check"}))
	assert.Contains(t, out.String(), "available")

	app, _ = newTestApp(&fakeClient{checkErr: errors.New("restricted")})
	require.Error(t, app.Run(context.Background(), []string{"check"}))
}

func TestRun_Reconcile(t *testing.T) {
	fc := &fakeClient{}
	app, _ := newTestApp(fc)
	require.NoError(t, app.Run(context.Background(), []string{"reconcile"}))
	assert.True(t, fc.reconciled)
}

func TestRun_ListScopedByRecipient(t *testing.T) {
	fc := &fakeClient{listNames: []string{"+15551234567-manifest"}}
	app, out := newTestApp(fc)

	require.NoError(t, app.Run(context.Background(), []string{"list", "+15551234567"}))
	assert.Equal(t, "+15551234567", fc.listRecipient)
	assert.Contains(t, out.String(), "+15551234567-manifest")
	assert.Contains(t, out.String(), "1 record(s)")
}

func TestRun_Manifests(t *testing.T) {
	fc := &fakeClient{manifests: []string{"+15551234567", "+19995550000"}}
	app, out := newTestApp(fc)

	require.NoError(t, app.Run(context.Background(), []string{"manifests"}))
	assert.Contains(t, out.String(), "2 manifest(s)")
}

func TestRun_Exists(t *testing.T) {
	app, out := newTestApp(&fakeClient{existsResult: true})
	require.NoError(t, app.Run(context.Background(), []string{"exists", "+15551234567-manifest"}))
	assert.Contains(t, out.String(), "exists")

	app, out = newTestApp(&fakeClient{existsResult: false})
	require.NoError(t, app.Run(context.Background(), []string{"exists", "+15551234567-manifest"}))
	assert.Contains(t, out.String(), "absent")

	app, _ = newTestApp(&fakeClient{})
	require.Error(t, app.Run(context.Background(), []string{"exists"}), "missing arg")
}

func TestRun_Delete(t *testing.T) {
	fc := &fakeClient{}
	app, _ := newTestApp(fc)

	require.NoError(t, app.Run(context.Background(), []string{"delete", "a-1", "b-2"}))
	assert.Equal(t, []string{"a-1", "b-2"}, fc.deleted)

	require.Error(t, app.Run(context.Background(), []string{"delete"}), "missing args")
}

func TestRun_UploadTest(t *testing.T) {
	fc := &fakeClient{}
	app, out := newTestApp(fc)

	require.NoError(t, app.Run(context.Background(), []string{"upload-test", "+15551234567"}))
	assert.True(t, strings.HasPrefix(fc.savedName, "+15551234567-test-"),
		"test record name should carry the test role prefix, got %q", fc.savedName)
	assert.NotEmpty(t, fc.savedBlob)
	assert.Contains(t, out.String(), "saved test record")
}

func TestPositional_StripsConfigFlags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "flags with separate values",
			in:   []string{"-b", "mybucket", "list", "+15551234567"},
			want: []string{"list", "+15551234567"},
		},
		{
			name: "flags with equals values",
			in:   []string{"-e=http://minio:9000", "check"},
			want: []string{"check"},
		},
		{
			name: "config file flag",
			in:   []string{"-config", "cfg.json", "manifests"},
			want: []string{"manifests"},
		},
		{
			name: "no flags",
			in:   []string{"delete", "a-1"},
			want: []string{"delete", "a-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Positional(tt.in))
		})
	}
}
