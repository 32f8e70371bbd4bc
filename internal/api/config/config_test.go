package config

import (
	"reflect"
	"testing"
)

// leafKeys 按 mapstructure tag 展开配置结构体的全部叶子 key
func leafKeys(t reflect.Type, prefix string) []string {
	var keys []string
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		key := field.Tag.Get("mapstructure")
		if prefix != "" {
			key = prefix + "." + key
		}
		if field.Type.Kind() == reflect.Struct {
			keys = append(keys, leafKeys(field.Type, key)...)
			continue
		}
		keys = append(keys, key)
	}
	return keys
}

func TestDefaultValuesCoverEveryKey(t *testing.T) {
	defaults := defaultValues()
	for _, key := range leafKeys(reflect.TypeOf(Config{}), "") {
		if _, ok := defaults[key]; !ok {
			t.Errorf("missing default for %s, its env override would be ignored", key)
		}
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("DAM_DATABASE_DSN", "host=db user=dam dbname=dam")
	t.Setenv("DAM_JWT_SECRET", "test-secret")
	t.Setenv("DAM_REDIS_DB", "3")
	t.Setenv("DAM_LOGSTASH_TOKEN", "log-token")

	if err := LoadConfig(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if Cfg.Redis.DB != 3 || Cfg.Logstash.Token != "log-token" {
		t.Fatalf("env overrides ignored: redis.db=%d logstash.token=%q", Cfg.Redis.DB, Cfg.Logstash.Token)
	}
	if Cfg.Server.BaseURL != "" {
		t.Fatalf("base_url should default to empty, got %q", Cfg.Server.BaseURL)
	}
	if Cfg.Upload.MaxSize != 200*1024*1024 {
		t.Fatalf("unexpected upload.max_size %d", Cfg.Upload.MaxSize)
	}
}
