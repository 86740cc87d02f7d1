package daemon

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoPowerDNS-Admin/appsettings/internal/config"
	"github.com/GoPowerDNS-Admin/appsettings/internal/db"
	"github.com/GoPowerDNS-Admin/appsettings/internal/settings"
)

func TestOpenReconciler(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.Config
		wantErr error
	}{
		{
			name:    "nil config",
			cfg:     nil,
			wantErr: ErrConfigNil,
		},
		{
			name: "memory engine",
			cfg:  &config.Config{DB: config.DB{GormEngine: config.EngineMemory}},
		},
		{
			name: "sqlite engine",
			cfg: &config.Config{DB: config.DB{
				GormEngine: config.EngineSQLite,
				Path:       filepath.Join(t.TempDir(), "data", "settings.db"),
			}},
		},
		{
			name:    "unknown engine",
			cfg:     &config.Config{DB: config.DB{GormEngine: "oracle"}},
			wantErr: db.ErrUnsupportedEngine,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, closeFn, err := OpenReconciler(tt.cfg)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)

			defer func() {
				assert.NoError(t, closeFn())
			}()

			ctx := context.Background()

			rec, err := r.Load(ctx, settings.Mail)
			require.NoError(t, err)
			require.NoError(t, rec.Set("smtpPort", int32(465)))
			require.NoError(t, r.Save(ctx, rec))

			rec, err = r.Load(ctx, settings.Mail)
			require.NoError(t, err)

			port, _ := rec.Int("smtpPort")
			assert.Equal(t, int32(465), port)
		})
	}
}

func TestNew(t *testing.T) {
	_, err := New(nil)
	require.ErrorIs(t, err, ErrConfigNil)

	d, err := New(&config.Config{
		DB:        config.DB{GormEngine: config.EngineMemory},
		Webserver: config.Webserver{Port: 8080},
	})
	require.NoError(t, err)
	assert.NotNil(t, d.Web())
	assert.Equal(t, ":8080", d.Web().Addr())
}
