package versioning

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mindburn-Labs/sdui/pkg/token"
)

func TestVersionParse(t *testing.T) {
	tests := []struct {
		input   string
		want    *Version
		wantErr bool
	}{
		{"1.0.0", &Version{Major: 1}, false},
		{"v1.0.0", &Version{Major: 1}, false},
		{"2.3.4", &Version{Major: 2, Minor: 3, Patch: 4}, false},
		{"1.0.0-alpha", &Version{Major: 1, Prerelease: "alpha"}, false},
		{"1.0.0-rc.1+build.123", &Version{Major: 1, Prerelease: "rc.1", Build: "build.123"}, false},
		{"invalid", nil, true},
		{"1.0", nil, true},
		{"", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestVersionString(t *testing.T) {
	require.Equal(t, "1.0.0-rc.1+sha.abc", Version{Major: 1, Prerelease: "rc.1", Build: "sha.abc"}.String())
	require.Equal(t, "2.3.4", Version{Major: 2, Minor: 3, Patch: 4}.String())
}

func TestVersionCompare(t *testing.T) {
	tests := []struct {
		v1, v2 string
		want   int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.0.0", "2.0.0", -1},
		{"2.0.0", "1.0.0", 1},
		{"1.1.0", "1.0.9", 1},
		{"1.0.0-alpha", "1.0.0", -1},
		{"1.0.0", "1.0.0-alpha", 1},
		{"1.0.0+a", "1.0.0+b", 0},
	}
	for _, tt := range tests {
		t.Run(tt.v1+"_vs_"+tt.v2, func(t *testing.T) {
			require.Equal(t, tt.want, MustParse(tt.v1).Compare(MustParse(tt.v2)))
		})
	}
}

func TestIsCompatibleWith(t *testing.T) {
	tests := []struct {
		this, other string
		want        bool
	}{
		{"1.2.3", "1.2.3", true},
		{"1.3.0", "1.2.9", true},
		{"1.2.4", "1.2.3", true},
		{"1.2.2", "1.2.3", false},
		{"1.1.9", "1.2.0", false},
		{"2.0.0", "1.0.0", false},
		{"1.9.9", "2.0.0", false},
	}
	for _, tt := range tests {
		t.Run(tt.this+"~"+tt.other, func(t *testing.T) {
			assert.Equal(t, tt.want, MustParse(tt.this).IsCompatibleWith(MustParse(tt.other)))
		})
	}
}

func TestCanMigrateTo(t *testing.T) {
	assert.True(t, MustParse("1.0.0").CanMigrateTo(MustParse("1.0.0")))
	assert.True(t, MustParse("1.0.0").CanMigrateTo(MustParse("2.0.0")))
	assert.True(t, MustParse("1.9.9").CanMigrateTo(MustParse("2.0.0")))
	assert.False(t, MustParse("2.0.1").CanMigrateTo(MustParse("2.0.0")))
	assert.False(t, MustParse("1.1.0").CanMigrateTo(MustParse("1.0.5")))
}

func TestSatisfies(t *testing.T) {
	ok, err := MustParse("1.4.0").Satisfies(">= 1.2, < 2")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = MustParse("2.0.0").Satisfies(">= 1.2, < 2")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = MustParse("1.0.0").Satisfies("not a constraint")
	assert.Error(t, err)
}

func TestVersionJSON(t *testing.T) {
	type doc struct {
		SchemaVersion Version `json:"schemaVersion"`
	}
	b, err := json.Marshal(doc{SchemaVersion: MustParse("1.2.0")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"schemaVersion":"1.2.0"}`, string(b))

	var back doc
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, MustParse("1.2.0"), back.SchemaVersion)

	assert.Error(t, json.Unmarshal([]byte(`{"schemaVersion":"1.2"}`), &back))
}

func TestIncrement(t *testing.T) {
	v := MustParse("1.2.3-rc.1")
	assert.Equal(t, "2.0.0", v.IncrementMajor().String())
	assert.Equal(t, "1.3.0", v.IncrementMinor().String())
	assert.Equal(t, "1.2.4", v.IncrementPatch().String())
}

func TestGate_Boundary(t *testing.T) {
	var g *Gate
	old := &token.Text{Base: token.Base{ID: "t", Version: 0}, Text: "x"}
	c := g.Check(old)
	assert.False(t, c.Compatible)
	assert.Equal(t, 1, c.MinSupported)

	old.Version = token.MinSupportedVersion(token.KindText)
	assert.True(t, g.Check(old).Compatible, "boundary is inclusive")
}

func TestGate_Overrides(t *testing.T) {
	floors, err := ParseFloors(map[string]int{"Button": 3})
	require.NoError(t, err)
	g := NewGate(floors)

	btn := &token.Button{Base: token.Base{ID: "b", Version: 2}}
	c := g.Check(btn)
	assert.False(t, c.Compatible)
	assert.Contains(t, c.String(), "below minimum supported version 3")

	g2 := g.WithFloor(token.KindButton, 2)
	assert.True(t, g2.Check(btn).Compatible)
	assert.False(t, g.Check(btn).Compatible, "WithFloor does not mutate the receiver")

	_, err = ParseFloors(map[string]int{"Carousel": 1})
	assert.Error(t, err)
	_, err = ParseFloors(map[string]int{"Text": 0})
	assert.Error(t, err)
}
