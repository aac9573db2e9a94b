package capture

import (
	"context"
	"testing"
	"time"
)

func TestApplyDefaults(t *testing.T) {
	o := Options{URL: "http://127.0.0.1:8501/", OutputPath: "out.png"}
	if err := o.applyDefaults(); err != nil {
		t.Fatal(err)
	}
	if o.Width != DefaultWidth || o.Height != DefaultHeight || o.Timeout != DefaultTimeoutSec*time.Second {
		t.Errorf("defaults not applied: %+v", o)
	}

	o = Options{URL: "x", OutputPath: "y", Width: 800, Height: 600, Timeout: time.Second}
	if err := o.applyDefaults(); err != nil {
		t.Fatal(err)
	}
	if o.Width != 800 || o.Height != 600 || o.Timeout != time.Second {
		t.Errorf("explicit values overwritten: %+v", o)
	}
}

func TestDashboardPNGRequiresTargets(t *testing.T) {
	if err := DashboardPNG(context.Background(), Options{OutputPath: "x.png"}); err == nil {
		t.Error("missing URL should fail before starting a browser")
	}
	if err := DashboardPNG(context.Background(), Options{URL: "http://localhost"}); err == nil {
		t.Error("missing output path should fail before starting a browser")
	}
}
