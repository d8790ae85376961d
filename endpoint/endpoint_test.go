package endpoint

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		segments []string
		expected string
	}{
		{"base without trailing slash", "https://shop.example", []string{"api/orders"}, "https://shop.example/api/orders"},
		{"base with trailing slash", "https://shop.example/", []string{"api/orders"}, "https://shop.example/api/orders"},
		{"segment with leading slash is appended", "https://shop.example/shop", []string{"/api/orders"}, "https://shop.example/shop/api/orders"},
		{"segment with trailing slash", "https://shop.example/shop/", []string{"api/orders/"}, "https://shop.example/shop/api/orders"},
		{"numeric id", "https://shop.example", []string{"api/orders", "42"}, "https://shop.example/api/orders/42"},
		{"multi-part segment", "https://shop.example", []string{"api/product_variations", "5/detach_product_variation"}, "https://shop.example/api/product_variations/5/detach_product_variation"},
		{"space is escaped", "https://shop.example", []string{"api/users", "john doe"}, "https://shop.example/api/users/john%20doe"},
		{"query on base is kept", "https://shop.example/index.php?lang=en", []string{"api"}, "https://shop.example/index.php/api?lang=en"},
		{"no segments", "https://shop.example/shop/", nil, "https://shop.example/shop"},
		{"root only", "https://shop.example", nil, "https://shop.example/"},
		{"empty segments are skipped", "https://shop.example", []string{"", "//", "api"}, "https://shop.example/api"},
		{"dot-dot cannot climb the base path", "https://shop.example/store", []string{"api/product_variations_groups", ".."}, "https://shop.example/store/api/product_variations_groups/%2E%2E"},
		{"dot inside a segment", "https://shop.example/store", []string{"api/./orders/../7"}, "https://shop.example/store/api/%2E/orders/%2E%2E/7"},
		{"dots within a name are kept", "https://shop.example", []string{"api/files", "...", "a.b"}, "https://shop.example/api/files/.../a.b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.base, tt.segments...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNew_InvalidBase(t *testing.T) {
	tests := []struct {
		name string
		base string
	}{
		{"empty", ""},
		{"relative path", "api/orders"},
		{"missing scheme", "shop.example/api"},
		{"fragment", "https://shop.example/#top"},
		{"unparseable", "https://shop example/%zz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.base)
			require.Error(t, err)
			var invalid *InvalidBaseURLError
			assert.True(t, errors.As(err, &invalid))
		})
	}
}

func TestMustNew_Panics(t *testing.T) {
	assert.Panics(t, func() { MustNew("not a url") })
}

func TestEndpoint_JoinDoesNotMutate(t *testing.T) {
	root := MustNew("https://shop.example/shop")
	orders := root.Join("api/orders")
	_ = root.Join("api/products")

	assert.Equal(t, "https://shop.example/shop", root.String())
	assert.Equal(t, "https://shop.example/shop/api/orders", orders.String())
	assert.Equal(t, "/shop/api/orders", orders.URL().Path)
}

func TestEndpoint_ZeroValueString(t *testing.T) {
	var e Endpoint
	assert.Equal(t, "", e.String())
}

// slashy wraps a segment in a random number of leading and trailing slashes.
func slashy(t *rapid.T, label string) string {
	seg := rapid.StringMatching(`[a-z0-9_]{1,12}`).Draw(t, label)
	lead := rapid.IntRange(0, 3).Draw(t, label+"_lead")
	trail := rapid.IntRange(0, 3).Draw(t, label+"_trail")
	return strings.Repeat("/", lead) + seg + strings.Repeat("/", trail)
}

func TestResolve_AppendsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		basePath := rapid.StringMatching(`(/[a-z0-9]{1,8}){0,3}`).Draw(t, "basePath")
		trailing := rapid.Bool().Draw(t, "trailing")
		base := "https://shop.example" + basePath
		if trailing {
			base += "/"
		}
		segment := slashy(t, "segment")

		got, err := Resolve(base, segment)
		if err != nil {
			t.Fatalf("Resolve(%q, %q): %v", base, segment, err)
		}

		want := "https://shop.example" + basePath + "/" + strings.Trim(segment, "/")
		if got != want {
			t.Fatalf("Resolve(%q, %q) = %q, want %q", base, segment, got, want)
		}
		if strings.Contains(strings.TrimPrefix(got, "https://"), "//") {
			t.Fatalf("doubled slash in %q", got)
		}
	})
}

func TestJoin_AssociativeProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		root := MustNew("https://shop.example/" + rapid.StringMatching(`[a-z]{0,6}`).Draw(t, "root"))
		a := slashy(t, "a")
		b := slashy(t, "b")

		stepwise := root.Join(a).Join(b).String()
		combined := root.Join(a, b).String()
		if stepwise != combined {
			t.Fatalf("Join(%q).Join(%q) = %q, Join(%q, %q) = %q", a, b, stepwise, a, b, combined)
		}
	})
}
