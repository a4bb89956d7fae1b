package naming

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseMetadata(t *testing.T) {
	cases := []struct {
		name string
		path string
		want Metadata
	}{
		{
			name: "canonical", path: "13_MD_Pass 1_RedHerring.csv",
			want: Metadata{Job: "13", Batch: "MD", Pass: "1", List: "RedHerring"},
		},
		{
			name: "directory dropped", path: "/data/in/JOB1_AA_Pass 2_Y.csv",
			want: Metadata{Job: "JOB1", Batch: "AA", Pass: "2", List: "Y"},
		},
		{
			name: "extra tokens ignored", path: "JOB1_AA_Pass 3_List_final_v2.csv",
			want: Metadata{Job: "JOB1", Batch: "AA", Pass: "3", List: "List"},
		},
		{
			name: "pass without label kept raw", path: "JOB1_AA_P4_X.csv",
			want: Metadata{Job: "JOB1", Batch: "AA", Pass: "P4", List: "X"},
		},
		{
			name: "no extension", path: "J_B_Pass 10_L",
			want: Metadata{Job: "J", Batch: "B", Pass: "10", List: "L"},
		},
		{
			name: "empty tokens allowed", path: "__Pass 1_.csv",
			want: Metadata{Job: "", Batch: "", Pass: "1", List: ""},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseMetadata(tc.path)
			if err != nil {
				t.Fatalf("ParseMetadata(%q): %v", tc.path, err)
			}
			if got != tc.want {
				t.Errorf("ParseMetadata(%q) = %+v, want %+v", tc.path, got, tc.want)
			}
		})
	}
}

func TestParseMetadata_TooFewTokens(t *testing.T) {
	for _, path := range []string{"master.csv", "JOB1_AA.csv", "JOB1_AA_Pass 1.csv", "/a_b_c_d/x_y.csv"} {
		t.Run(path, func(t *testing.T) {
			_, err := ParseMetadata(path)
			if !errors.Is(err, ErrMalformedName) {
				t.Errorf("ParseMetadata(%q) error = %v, want ErrMalformedName", path, err)
			}
		})
	}
}

func TestMetadata_Values(t *testing.T) {
	m := Metadata{Job: "J", Batch: "B", Pass: "1", List: "L"}
	if got := strings.Join(m.Values(), ","); got != "J,B,1,L" {
		t.Errorf("Values() = %q", got)
	}
}

func TestDerivedPath(t *testing.T) {
	tests := []struct {
		input, suffix, dir, want string
	}{
		{"/in/13_MD_Pass 1_X.csv", "_COLS_ADDED", "/work", "/work/13_MD_Pass 1_X_COLS_ADDED.csv"},
		{"/in/13_MD_Pass 1_X.csv", "_COLS_ADDED", "", "13_MD_Pass 1_X_COLS_ADDED.csv"},
		{"noext", "_COLS_ADDED", "out", "out/noext_COLS_ADDED"},
	}
	for _, tt := range tests {
		if got := DerivedPath(tt.input, tt.suffix, tt.dir); got != tt.want {
			t.Errorf("DerivedPath(%q, %q, %q) = %q, want %q", tt.input, tt.suffix, tt.dir, got, tt.want)
		}
	}
}

func TestCollisionResolver(t *testing.T) {
	cr := NewCollisionResolver()
	want := filepath.Join("out", "x_COLS_ADDED.csv")

	if got := cr.Resolve("a/x.csv", want); got != want {
		t.Errorf("first claim = %q, want %q", got, want)
	}
	if got := cr.Resolve("a/x.csv", want); got != want {
		t.Errorf("same owner reclaim = %q, want %q", got, want)
	}
	if got, exp := cr.Resolve("b/x.csv", want), filepath.Join("out", "x_COLS_ADDED-2.csv"); got != exp {
		t.Errorf("second owner = %q, want %q", got, exp)
	}
	if got, exp := cr.Resolve("c/x.csv", want), filepath.Join("out", "x_COLS_ADDED-3.csv"); got != exp {
		t.Errorf("third owner = %q, want %q", got, exp)
	}
	if got, exp := cr.Resolve("b/x.csv", want), filepath.Join("out", "x_COLS_ADDED-2.csv"); got != exp {
		t.Errorf("second owner again = %q, want %q", got, exp)
	}
}
