// Package services contains the application services behind each feature
// view: authentication, risk prediction, history/trends, chat, and diet
// plans. Services call the request pipeline, normalize backend responses,
// and never touch session state except through the lifecycle manager.
package services

import (
	"context"

	"github.com/go-playground/validator/v10"
)

// caller is the slice of the request pipeline the services need.
// *api.Client satisfies it; tests provide fakes.
type caller interface {
	Get(ctx context.Context, path string) ([]byte, error)
	Post(ctx context.Context, path string, body any) ([]byte, error)
}

// validate is shared across services; validator instances cache struct
// metadata and are safe for concurrent use.
var validate = validator.New()
