// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

// Package store uploads the archive tree to an S3-compatible dataset store.
// Credentials come from the environment only; the fetch core never reads
// them.
package store

import (
	"errors"

	"github.com/spf13/viper"
)

// Config holds the dataset-store target and credentials.
type Config struct {
	Bucket      string
	Prefix      string
	Region      string
	EndpointURL string

	AccessKey    string
	SecretKey    string
	SessionToken string
}

// envBindings maps config keys to their canonical environment variables.
var envBindings = map[string]string{
	"bucket":        "BOE_S3_BUCKET",
	"prefix":        "BOE_S3_PREFIX",
	"region":        "AWS_REGION",
	"endpoint_url":  "AWS_ENDPOINT_URL",
	"access_key":    "AWS_ACCESS_KEY_ID",
	"secret_key":    "AWS_SECRET_ACCESS_KEY",
	"session_token": "AWS_SESSION_TOKEN",
}

// FromEnv reads the upload configuration from the environment.
func FromEnv() Config {
	v := viper.New()
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}
	v.SetDefault("region", "us-east-1")
	v.SetDefault("prefix", "boe")

	return Config{
		Bucket:       v.GetString("bucket"),
		Prefix:       v.GetString("prefix"),
		Region:       v.GetString("region"),
		EndpointURL:  v.GetString("endpoint_url"),
		AccessKey:    v.GetString("access_key"),
		SecretKey:    v.GetString("secret_key"),
		SessionToken: v.GetString("session_token"),
	}
}

// Validate checks that the config is complete enough to upload.
func (c Config) Validate() error {
	if c.Bucket == "" {
		return errors.New("missing bucket (set BOE_S3_BUCKET or --bucket)")
	}
	if c.AccessKey == "" || c.SecretKey == "" {
		return errors.New("missing credentials (set AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY)")
	}
	return nil
}
