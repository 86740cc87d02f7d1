package dsn

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GoPowerDNS-Admin/appsettings/internal/config"
)

func testConfig(extras string) *config.Config {
	return &config.Config{
		DB: config.DB{
			Host:     "db.local",
			Port:     3306,
			User:     "settings",
			Password: "secret",
			Name:     "appsettings",
			Extras:   extras,
		},
	}
}

func TestCreate(t *testing.T) {
	assert.Equal(t,
		"settings:secret@tcp(db.local:3306)/appsettings?parseTime=true",
		Create(testConfig("parseTime=true")))
}

func TestPostgres(t *testing.T) {
	tests := []struct {
		name   string
		extras string
		want   string
	}{
		{
			name:   "with extras",
			extras: "sslmode=disable",
			want:   "host=db.local port=3306 user=settings password=secret dbname=appsettings sslmode=disable",
		},
		{
			name: "without extras",
			want: "host=db.local port=3306 user=settings password=secret dbname=appsettings",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Postgres(testConfig(tt.extras)))
		})
	}
}
