package blob

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func TestS3Store_Key(t *testing.T) {
	tests := []struct {
		prefix string
		path   string
		want   string
	}{
		{prefix: "", path: "users/u1/r1", want: "users/u1/r1"},
		{prefix: "drive", path: "users/u1/r1", want: "drive/users/u1/r1"},
		{prefix: "a/b", path: "snapshots/s1", want: "a/b/snapshots/s1"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			s := &S3Store{prefix: tt.prefix}
			if got := s.key(tt.path); got != tt.want {
				t.Errorf("key(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestNewS3Store(t *testing.T) {
	t.Run("requires bucket", func(t *testing.T) {
		if _, err := NewS3Store(context.Background(), S3Options{Region: "us-east-1"}); err == nil {
			t.Error("NewS3Store() expected error without bucket")
		}
	})

	t.Run("trims prefix", func(t *testing.T) {
		s, err := NewS3Store(context.Background(), S3Options{
			Bucket:          "drive-blobs",
			Prefix:          "/tenant/",
			Region:          "us-east-1",
			AccessKeyID:     "AKIDEXAMPLE",
			SecretAccessKey: "secret",
		})
		if err != nil {
			t.Fatalf("NewS3Store() error = %v", err)
		}
		if s.prefix != "tenant" {
			t.Errorf("prefix = %q, want %q", s.prefix, "tenant")
		}
		if s.bucket != "drive-blobs" {
			t.Errorf("bucket = %q, want %q", s.bucket, "drive-blobs")
		}
	})
}

func TestClientOptions(t *testing.T) {
	var o s3.Options
	clientOptions(S3Options{Endpoint: "http://localhost:9000", UsePathStyle: true})(&o)

	if o.BaseEndpoint == nil || *o.BaseEndpoint != "http://localhost:9000" {
		t.Errorf("BaseEndpoint = %v, want http://localhost:9000", o.BaseEndpoint)
	}
	if !o.UsePathStyle {
		t.Error("UsePathStyle = false, want true")
	}

	var plain s3.Options
	clientOptions(S3Options{})(&plain)
	if plain.BaseEndpoint != nil {
		t.Errorf("BaseEndpoint = %v, want nil", *plain.BaseEndpoint)
	}
}
