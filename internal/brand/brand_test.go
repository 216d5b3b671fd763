package brand

import (
	"path/filepath"
	"testing"
)

func TestBrandLoaded(t *testing.T) {
	if Name == "" {
		t.Error("brand Name should not be empty")
	}
	if LowerName == "" {
		t.Error("brand LowerName should not be empty")
	}
	if ConfigEnvPrefix == "" {
		t.Error("brand ConfigEnvPrefix should not be empty")
	}
	if ConfigFileName == "" {
		t.Error("brand ConfigFileName should not be empty")
	}
}

func TestGetConfigDirEnvOverride(t *testing.T) {
	t.Setenv(ConfigEnvPrefix+"_CONFIG_DIR", "/tmp/na-test")
	if got := GetConfigDir(); got != "/tmp/na-test" {
		t.Errorf("GetConfigDir() = %q, want /tmp/na-test", got)
	}
}

func TestGetDataDirPrefix(t *testing.T) {
	t.Setenv(ConfigEnvPrefix+"_DATA_DIR", "")
	t.Setenv(ConfigEnvPrefix+"_PREFIX", "/opt/na")
	want := filepath.Join("/opt/na", "data")
	if got := GetDataDir(); got != want {
		t.Errorf("GetDataDir() = %q, want %q", got, want)
	}
}

func TestUserAgent(t *testing.T) {
	ua := UserAgent()
	if ua == "" || ua[0] == '/' {
		t.Errorf("unexpected user agent %q", ua)
	}
}
