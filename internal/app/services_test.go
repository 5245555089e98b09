package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Syedsafwan24/Gradvy-sub002/internal/data/repos/testutil"
)

func TestNewCacheBackend(t *testing.T) {
	log := testutil.Logger(t)
	reposet := wireRepos(testutil.DB(t), log)

	tests := []struct {
		backend  string
		wantName string
		wantErr  bool
	}{
		{backend: CacheBackendPostgres, wantName: "postgres"},
		{backend: CacheBackendMemory, wantName: "memory"},
		{backend: CacheBackendRedis, wantErr: true},
		{backend: "memcached", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.backend, func(t *testing.T) {
			b, err := newCacheBackend(Config{RecCacheBackend: tc.backend}, reposet, Clients{})
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.wantName, b.Name())
		})
	}
}

func TestLoadValidator(t *testing.T) {
	v, err := loadValidator("")
	require.NoError(t, err)
	_, ok := v.FieldRules("basic_info", "learning_goals")
	require.True(t, ok)

	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`version: 1
sections:
  - name: basic_info
    fields:
      - name: learning_goals
        label: Goals
        rules:
          - kind: required
`), 0o600))
	v, err = loadValidator(path)
	require.NoError(t, err)
	res := v.ValidateField("basic_info", "learning_goals", []string{})
	require.False(t, res.IsValid)
	require.Equal(t, []string{"Goals is required"}, res.Errors)
	_, ok = v.FieldRules("basic_info", "experience_level")
	require.False(t, ok)

	_, err = loadValidator(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestWireServicesWithMemoryBackends(t *testing.T) {
	log := testutil.Logger(t)
	tx := testutil.Tx(t, testutil.DB(t))
	cfg := Config{RecCacheBackend: CacheBackendMemory, DraftDir: ""}

	clients, err := wireClients(t.Context(), log, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { clients.Close(log) })

	serviceset, err := wireServices(tx, log, cfg, nil, wireRepos(tx, log), clients)
	require.NoError(t, err)
	require.Equal(t, "memory", serviceset.Cache.Backend())

	handlerset := wireHandlers(log, tx, serviceset, clients)
	require.NotNil(t, handlerset.Preference)
	require.NotNil(t, wireServer(log, cfg, nil, handlerset).Engine)
}
