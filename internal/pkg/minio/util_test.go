package minio

import (
	"TaylorDAM/internal/api/config"
	"testing"
)

func TestObjectKeyFromURL(t *testing.T) {
	cfg := config.MinIOConfig{ExternalEndpoint: "cdn.example.com", Bucket: "dam-media", ExternalUseSSL: true}

	base := publicBase(cfg)
	if base != "https://cdn.example.com/dam-media/" {
		t.Fatalf("base=%s", base)
	}

	cases := []struct {
		url  string
		key  string
		want bool
	}{
		{"https://cdn.example.com/dam-media/media/u1/a-1-x.jpg", "media/u1/a-1-x.jpg", true},
		{"https://other.example.com/dam-media/media/u1/a.jpg", "", false},
		{"https://cdn.example.com/other-bucket/media/u1/a.jpg", "", false},
		{"https://cdn.example.com/dam-media/", "", false},
		{"https://cdn.example.com/dam-media/media/../secret", "", false},
		{"::not a url", "", false},
	}
	for _, c := range cases {
		key, ok := objectKeyFromURL(cfg, c.url)
		if ok != c.want || key != c.key {
			t.Fatalf("objectKeyFromURL(%q) = %q,%v want %q,%v", c.url, key, ok, c.key, c.want)
		}
	}
}
