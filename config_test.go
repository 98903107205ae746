package fieldgate

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("posts")
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Variant != VariantStrict {
		t.Fatal("expected strict variant by default")
	}
	if cfg.DeletePolicy != DeleteDenyUnlessAllowed {
		t.Fatal("expected deny-unless-allowed delete policy by default")
	}
	if cfg.Methods != (MethodsConfig{}) {
		t.Fatalf("expected no methods by default, got %+v", cfg.Methods)
	}
}

func TestDefaultMethods(t *testing.T) {
	m := DefaultMethods("posts")
	if m.Create != "posts.create" || m.Edit != "posts.edit" || m.Delete != "posts.delete" {
		t.Fatalf("unexpected method names: %+v", m)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"missing collection", func(c *Config) { c.Collection = "" }, true},
		{"bad variant", func(c *Config) { c.Variant = Variant(99) }, true},
		{"bad delete policy", func(c *Config) { c.DeletePolicy = DeletePolicy(99) }, true},
		{"audit enabled zero buffer", func(c *Config) {
			c.Audit.Enabled = true
			c.Audit.BufferSize = 0
		}, true},
		{"audit disabled zero buffer", func(c *Config) {
			c.Audit.Enabled = false
			c.Audit.BufferSize = 0
		}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig("posts")
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}
