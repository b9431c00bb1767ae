package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()

	if cfg.Servers == nil {
		t.Error("NewConfig() should initialize the server list")
	}
	if cfg.Settings == nil || cfg.Settings.TimeoutSeconds != 30 {
		t.Errorf("NewConfig() should default to a 30s timeout, got %+v", cfg.Settings)
	}
}

func TestFindSetRemoveServer(t *testing.T) {
	cfg := NewConfig()

	cfg.SetServer(Server{Name: "alpha", Transport: Transport{Type: TransportStdio, Command: "a"}})
	cfg.SetServer(Server{Name: "beta", Transport: Transport{Type: TransportStdio, Command: "b"}})

	if srv := cfg.FindServer("alpha"); srv == nil || srv.Transport.Command != "a" {
		t.Errorf("FindServer('alpha') = %+v", srv)
	}
	if srv := cfg.FindServer("missing"); srv != nil {
		t.Errorf("FindServer('missing') should be nil, got %+v", srv)
	}

	// SetServer replaces in place, preserving order.
	cfg.SetServer(Server{Name: "alpha", Transport: Transport{Type: TransportStdio, Command: "a2"}})
	if len(cfg.Servers) != 2 || cfg.Servers[0].Transport.Command != "a2" {
		t.Errorf("SetServer should replace, got %+v", cfg.Servers)
	}

	if !cfg.RemoveServer("alpha") {
		t.Error("RemoveServer('alpha') should report removal")
	}
	if cfg.RemoveServer("alpha") {
		t.Error("Second RemoveServer('alpha') should report nothing removed")
	}
	if len(cfg.Servers) != 1 || cfg.Servers[0].Name != "beta" {
		t.Errorf("Unexpected servers after removal: %+v", cfg.Servers)
	}
}

func TestRemoveServerDropsDuplicates(t *testing.T) {
	cfg := NewConfig()
	cfg.Servers = append(cfg.Servers,
		Server{Name: "twin", Transport: Transport{Type: TransportStdio, Command: "a"}},
		Server{Name: "twin", Transport: Transport{Type: TransportStdio, Command: "b"}},
	)

	if !cfg.RemoveServer("twin") {
		t.Fatal("RemoveServer should report removal")
	}
	if len(cfg.Servers) != 0 {
		t.Errorf("RemoveServer should drop every duplicate, got %+v", cfg.Servers)
	}
}

func TestServerValidate(t *testing.T) {
	tests := []struct {
		name    string
		server  Server
		wantErr bool
	}{
		{
			name:   "valid stdio",
			server: Server{Name: "a", Transport: Transport{Type: TransportStdio, Command: "npx"}},
		},
		{
			name:   "valid sse",
			server: Server{Name: "a", Transport: Transport{Type: TransportSSE, URL: "https://example.com/sse"}},
		},
		{
			name:   "valid http",
			server: Server{Name: "a", Transport: Transport{Type: TransportHTTP, URL: "http://localhost:8080/mcp"}},
		},
		{
			name:    "empty name",
			server:  Server{Transport: Transport{Type: TransportStdio, Command: "npx"}},
			wantErr: true,
		},
		{
			name:    "stdio without command",
			server:  Server{Name: "a", Transport: Transport{Type: TransportStdio}},
			wantErr: true,
		},
		{
			name:    "sse without url",
			server:  Server{Name: "a", Transport: Transport{Type: TransportSSE}},
			wantErr: true,
		},
		{
			name:    "http with bad scheme",
			server:  Server{Name: "a", Transport: Transport{Type: TransportHTTP, URL: "ftp://example.com"}},
			wantErr: true,
		},
		{
			name:    "missing transport type",
			server:  Server{Name: "a", Transport: Transport{}},
			wantErr: true,
		},
		{
			name:    "unknown transport type",
			server:  Server{Name: "a", Transport: Transport{Type: "websocket", URL: "wss://x"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.server.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var vErr *ValidationError
				if !errors.As(err, &vErr) {
					t.Errorf("Expected *ValidationError, got %T", err)
				}
			}
		})
	}
}

func TestLoadFromMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")

	_, err := LoadFrom(path)
	if err == nil {
		t.Fatal("Expected error for missing config")
	}

	var notFound *ConfigNotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("Expected *ConfigNotFoundError, got %T: %v", err, err)
	}
}

func TestLoadFromInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFrom(path)
	if err == nil {
		t.Fatal("Expected error for invalid JSON")
	}

	var invalid *InvalidConfigError
	if !errors.As(err, &invalid) {
		t.Errorf("Expected *InvalidConfigError, got %T: %v", err, err)
	}
}

func TestLoadFromInfersStdio(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"servers": [
			{"name": "files", "transport": {"command": "npx", "args": ["-y", "server"]}}
		]
	}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if len(cfg.Servers) != 1 {
		t.Fatalf("Expected 1 server, got %d", len(cfg.Servers))
	}
	if cfg.Servers[0].Transport.Type != TransportStdio {
		t.Errorf("Expected inferred stdio transport, got %q", cfg.Servers[0].Transport.Type)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := NewConfig()
	cfg.SetServer(Server{
		Name: "files",
		Transport: Transport{
			Type:    TransportStdio,
			Command: "npx",
			Args:    []string{"-y", "@modelcontextprotocol/server-filesystem"},
			Env:     map[string]string{"KEY": "value"},
		},
	})
	cfg.SetServer(Server{
		Name:      "docs",
		Transport: Transport{Type: TransportHTTP, URL: "https://docs.example.com/mcp"},
	})

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if len(loaded.Servers) != 2 {
		t.Fatalf("Expected 2 servers, got %d", len(loaded.Servers))
	}
	if loaded.Servers[0].Name != "files" || loaded.Servers[1].Name != "docs" {
		t.Errorf("Server order not preserved: %+v", loaded.Servers)
	}
	if loaded.Servers[0].Transport.Env["KEY"] != "value" {
		t.Errorf("Env not preserved: %+v", loaded.Servers[0].Transport)
	}
	if loaded.Settings == nil || loaded.Settings.TimeoutSeconds != 30 {
		t.Errorf("Settings not preserved: %+v", loaded.Settings)
	}
}

func TestSaveRejectsInvalidServer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := NewConfig()
	cfg.Servers = append(cfg.Servers, Server{Name: "bad", Transport: Transport{Type: TransportStdio}})

	if err := Save(cfg, path); err == nil {
		t.Error("Save should reject an invalid server descriptor")
	}
}

func TestSaveCreatesBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := NewConfig()
	if err := Save(cfg, path); err != nil {
		t.Fatalf("First save failed: %v", err)
	}

	cfg.SetServer(Server{Name: "a", Transport: Transport{Type: TransportStdio, Command: "x"}})
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Second save failed: %v", err)
	}

	if _, err := os.Stat(path + ".bak"); err != nil {
		t.Errorf("Expected backup file after re-save: %v", err)
	}
}
