package main

import (
	"context"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/rpckit/route"
	"github.com/dmitrymomot/rpckit/session"
	"github.com/dmitrymomot/rpckit/validate"
)

// User is the session of an authenticated caller.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UserClaims is the payload of access tokens issued by /api/token.
type UserClaims struct {
	session.Claims
	Name string `json:"name"`
}

type LoginInput struct {
	Name string `json:"name"`
}

type TokenResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Deleted struct {
	ID string `json:"id"`
}

var userName = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

const accessTokenTTL = 15 * time.Minute

// deps are the collaborators of the route handlers.
type deps struct {
	catalog    *catalog
	sessions   session.Store[User]
	sessionTTL time.Duration
	signer     *session.Signer
	logger     *slog.Logger
	observer   route.Observer
	verbose    bool
}

// api holds every route of the service. The client side builds the same
// definitions to obtain typed endpoints; it never runs the handlers.
type api struct {
	login  *route.Route[LoginInput, route.None, route.None, route.None, TokenResult]
	token  *route.Route[route.None, route.None, route.None, User, TokenResult]
	me     *route.Route[route.None, route.None, route.None, UserClaims, User]
	list   *route.Route[route.None, ListQuery, route.None, route.None, []Product]
	get    *route.Route[route.None, route.None, ProductParams, route.None, Product]
	create *route.Route[ProductInput, route.None, route.None, User, Product]
	update *route.Route[ProductInput, route.None, ProductParams, User, Product]
	remove *route.Route[route.None, route.None, ProductParams, User, Deleted]
}

func newAPI(d deps) *api {
	v := validate.New()
	bearer := session.Bearer[User](d.sessions.Get)
	jwt := session.JWT[UserClaims](d.signer)

	return &api{
		login: route.New(route.Config[LoginInput, route.None, route.None, route.None, TokenResult]{
			Method: route.MethodPost,
			Path:   "/api/login",
			Strict: true,
			Validators: route.Validators[LoginInput, route.None, route.None]{
				Body: validate.Rules(func(in LoginInput) []validate.Rule {
					return []validate.Rule{
						validate.Required("name", in.Name),
						validate.MinLen("name", in.Name, 2),
						validate.MaxLen("name", in.Name, 64),
						validate.Match("name", in.Name, userName),
					}
				}),
			},
			Handler: func(ctx context.Context, req route.Request[LoginInput, route.None, route.None, route.None]) (TokenResult, error) {
				u := &User{ID: uuid.NewString(), Name: req.Data.Name}
				token, err := session.Issue(ctx, d.sessions, u, d.sessionTTL)
				if err != nil {
					return TokenResult{}, err
				}
				return TokenResult{Token: token, ExpiresAt: time.Now().Add(d.sessionTTL).UTC()}, nil
			},
			SuccessStatus: http.StatusCreated,
			Logger:        d.logger,
			Verbose:       d.verbose,
			Observer:      d.observer,
		}),

		token: route.New(route.Config[route.None, route.None, route.None, User, TokenResult]{
			Method:                 route.MethodPost,
			Path:                   "/api/token",
			RequiresAuthentication: true,
			Session:                bearer,
			Handler: func(_ context.Context, req route.Request[route.None, route.None, route.None, User]) (TokenResult, error) {
				now := time.Now().UTC()
				exp := now.Add(accessTokenTTL)
				token, err := d.signer.Sign(UserClaims{
					Claims: session.Claims{
						ID:        uuid.NewString(),
						Subject:   req.Session.ID,
						IssuedAt:  now.Unix(),
						ExpiresAt: exp.Unix(),
					},
					Name: req.Session.Name,
				})
				if err != nil {
					return TokenResult{}, err
				}
				return TokenResult{Token: token, ExpiresAt: exp}, nil
			},
			Logger:   d.logger,
			Verbose:  d.verbose,
			Observer: d.observer,
		}),

		me: route.New(route.Config[route.None, route.None, route.None, UserClaims, User]{
			Method:                 route.MethodGet,
			Path:                   "/api/me",
			RequiresAuthentication: true,
			Session:                jwt,
			Handler: func(_ context.Context, req route.Request[route.None, route.None, route.None, UserClaims]) (User, error) {
				return User{ID: req.Session.Subject, Name: req.Session.Name}, nil
			},
			Logger:   d.logger,
			Verbose:  d.verbose,
			Observer: d.observer,
		}),

		list: route.New(route.Config[route.None, ListQuery, route.None, route.None, []Product]{
			Method: route.MethodGet,
			Path:   "/api/products",
			Validators: route.Validators[route.None, ListQuery, route.None]{
				Query: validate.Struct[ListQuery](v),
			},
			Handler: func(ctx context.Context, req route.Request[route.None, ListQuery, route.None, route.None]) ([]Product, error) {
				// An invalid filter falls back to the unfiltered list.
				var q ListQuery
				if req.Query != nil {
					q = *req.Query
				}
				return d.catalog.list(ctx, q), nil
			},
			Logger:   d.logger,
			Verbose:  d.verbose,
			Observer: d.observer,
		}),

		get: route.New(route.Config[route.None, route.None, ProductParams, route.None, Product]{
			Method: route.MethodGet,
			Path:   "/api/products/{id}",
			Strict: true,
			Validators: route.Validators[route.None, route.None, ProductParams]{
				Params: validate.Struct[ProductParams](v),
			},
			Handler: func(ctx context.Context, req route.Request[route.None, route.None, ProductParams, route.None]) (Product, error) {
				return d.catalog.get(ctx, req.Params.ID)
			},
			PathParam: chi.URLParam,
			Logger:    d.logger,
			Verbose:   d.verbose,
			Observer:  d.observer,
		}),

		create: route.New(route.Config[ProductInput, route.None, route.None, User, Product]{
			Method:                 route.MethodPost,
			Path:                   "/api/products",
			Strict:                 true,
			RequiresAuthentication: true,
			Session:                bearer,
			Validators: route.Validators[ProductInput, route.None, route.None]{
				Body: validate.Struct[ProductInput](v),
			},
			Handler: func(ctx context.Context, req route.Request[ProductInput, route.None, route.None, User]) (Product, error) {
				return d.catalog.create(ctx, *req.Data, req.Session.ID), nil
			},
			SuccessStatus: http.StatusCreated,
			Logger:        d.logger,
			Verbose:       d.verbose,
			Observer:      d.observer,
		}),

		update: route.New(route.Config[ProductInput, route.None, ProductParams, User, Product]{
			Method:                 route.MethodPut,
			Path:                   "/api/products/{id}",
			Strict:                 true,
			RequiresAuthentication: true,
			Session:                bearer,
			Validators: route.Validators[ProductInput, route.None, ProductParams]{
				Body:   validate.Struct[ProductInput](v),
				Params: validate.Struct[ProductParams](v),
			},
			Handler: func(ctx context.Context, req route.Request[ProductInput, route.None, ProductParams, User]) (Product, error) {
				return d.catalog.update(ctx, req.Params.ID, *req.Data, req.Session.ID)
			},
			PathParam: chi.URLParam,
			Logger:    d.logger,
			Verbose:   d.verbose,
			Observer:  d.observer,
		}),

		remove: route.New(route.Config[route.None, route.None, ProductParams, User, Deleted]{
			Method:                 route.MethodDelete,
			Path:                   "/api/products/{id}",
			Strict:                 true,
			RequiresAuthentication: true,
			Session:                bearer,
			Validators: route.Validators[route.None, route.None, ProductParams]{
				Params: validate.Struct[ProductParams](v),
			},
			Handler: func(ctx context.Context, req route.Request[route.None, route.None, ProductParams, User]) (Deleted, error) {
				if err := d.catalog.delete(ctx, req.Params.ID, req.Session.ID); err != nil {
					return Deleted{}, err
				}
				return Deleted{ID: req.Params.ID}, nil
			},
			PathParam: chi.URLParam,
			Logger:    d.logger,
			Verbose:   d.verbose,
			Observer:  d.observer,
		}),
	}
}

// registry returns the route table of the service.
func (a *api) registry() (*route.Registry, error) {
	return route.NewStrictRegistry(a.login, a.token, a.me, a.list, a.get, a.create, a.update, a.remove)
}
