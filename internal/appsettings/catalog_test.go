package appsettings_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoPowerDNS-Admin/appsettings/internal/appsettings"
)

func TestCatalogRegister(t *testing.T) {
	testCases := []struct {
		name       string
		entityType appsettings.EntityType
		wantErr    bool
	}{
		{
			name:       "valid",
			entityType: testEntityType(),
		},
		{
			name:       "empty name",
			entityType: appsettings.NewEntityType("", appsettings.Bool("a", true)),
			wantErr:    true,
		},
		{
			name:       "no fields",
			entityType: appsettings.NewEntityType("empty"),
			wantErr:    true,
		},
		{
			name: "duplicate field",
			entityType: appsettings.NewEntityType("dup",
				appsettings.Bool("a", true),
				appsettings.Int("a", 1),
			),
			wantErr: true,
		},
		{
			name: "default of wrong kind",
			entityType: appsettings.NewEntityType("wrong", appsettings.Field{
				Name: "ratio", Kind: appsettings.KindDouble, Default: "1.5", HasDefault: true,
			}),
			wantErr: true,
		},
		{
			name: "unsupported kind",
			entityType: appsettings.NewEntityType("bad", appsettings.Field{
				Name: "x", Kind: appsettings.Kind(42),
			}),
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := appsettings.NewCatalog()
			require.NoError(t, err)

			err = c.Register(tc.entityType)
			if tc.wantErr {
				require.ErrorIs(t, err, appsettings.ErrSchema)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, []string{tc.entityType.Name}, c.Types())
		})
	}
}

func TestCatalogRegisterTwice(t *testing.T) {
	c, err := appsettings.NewCatalog(testEntityType())
	require.NoError(t, err)

	err = c.Register(testEntityType())
	require.ErrorIs(t, err, appsettings.ErrSchema)
}

func TestCatalogDefaultFor(t *testing.T) {
	c, err := appsettings.NewCatalog(
		testEntityType(),
		appsettings.NewEntityType("extra",
			appsettings.Float("ratio", 0.5),
			appsettings.NoDefault("label", appsettings.KindString),
			appsettings.NoDefault("count", appsettings.KindLong),
		),
	)
	require.NoError(t, err)

	testCases := []struct {
		name    string
		entity  string
		field   string
		want    any
		wantErr bool
	}{
		{name: "boolean", entity: testEntity, field: "testBooleanValue", want: true},
		{name: "integer", entity: testEntity, field: "testIntegerValue", want: int32(123)},
		{name: "long", entity: testEntity, field: "testLongValue", want: int64(100500)},
		{name: "double", entity: testEntity, field: "testDoubleValue", want: 3.1415926535},
		{name: "string", entity: testEntity, field: "testStringValue", want: "defVal"},
		{name: "float", entity: "extra", field: "ratio", want: float32(0.5)},
		{name: "string without default", entity: "extra", field: "label", want: ""},
		{name: "long without default", entity: "extra", field: "count", want: int64(0)},
		{name: "unknown field", entity: testEntity, field: "nope", wantErr: true},
		{name: "unknown entity", entity: "nope", field: "testBooleanValue", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := c.DefaultFor(tc.entity, tc.field)
			if tc.wantErr {
				require.ErrorIs(t, err, appsettings.ErrSchema)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	assert.Equal(t, []string{"extra", testEntity}, c.Types())
}

func TestCatalogIsolatedFromCaller(t *testing.T) {
	et := testEntityType()

	c, err := appsettings.NewCatalog(et)
	require.NoError(t, err)

	et.Fields[0] = appsettings.Bool("testBooleanValue", false)

	got, err := c.DefaultFor(testEntity, "testBooleanValue")
	require.NoError(t, err)
	assert.Equal(t, true, got)
}
