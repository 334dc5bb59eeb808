package config

import "testing"

func TestMustLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/invsys_test")
	t.Setenv("INTERNAL_TOKEN", "secret")

	cfg := MustLoad()

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.CORSAllowOrigin != "*" {
		t.Errorf("CORSAllowOrigin = %q", cfg.CORSAllowOrigin)
	}
	if cfg.PDFFontDir != "fonts" {
		t.Errorf("PDFFontDir = %q", cfg.PDFFontDir)
	}
	if cfg.AMQPQueue != "invsys.billing" {
		t.Errorf("AMQPQueue = %q", cfg.AMQPQueue)
	}
}

func TestMustLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/invsys_test")
	t.Setenv("INTERNAL_TOKEN", "secret")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("PDF_FONT_DIR", "/usr/share/fonts/dejavu")

	cfg := MustLoad()

	if cfg.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.PDFFontDir != "/usr/share/fonts/dejavu" {
		t.Errorf("PDFFontDir = %q", cfg.PDFFontDir)
	}
}
