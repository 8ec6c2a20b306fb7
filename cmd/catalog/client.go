package main

import (
	"context"
	"crypto/rand"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/rpckit/pkg/logger"
	"github.com/dmitrymomot/rpckit/pkg/requestid"
	"github.com/dmitrymomot/rpckit/route"
	"github.com/dmitrymomot/rpckit/rpc"
	"github.com/dmitrymomot/rpckit/session"
)

var errDemoFailed = errors.New("catalog: demo call failed")

// clientAPI builds the route definitions for their endpoints only.
func clientAPI() (*api, error) {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	signer, err := session.NewSigner(key)
	if err != nil {
		return nil, err
	}
	return newAPI(deps{
		catalog:  newCatalog(),
		sessions: session.NewMemoryStore[User](),
		signer:   signer,
	}), nil
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// demo logs in, creates a product and reads it back through the typed client.
func demo(ctx context.Context, a *api, c *rpc.Client, name string, log *slog.Logger) error {
	ctx = requestid.WithContext(ctx, "catalog-demo")

	login := rpc.Call(ctx, c, a.login.Endpoint(), rpc.Args[LoginInput, route.None, route.None]{
		Body: LoginInput{Name: name},
	})
	if login == nil {
		return errDemoFailed
	}

	created, err := rpc.Do(ctx, c, a.create.Endpoint(), rpc.Args[ProductInput, route.None, route.None]{
		Body:    ProductInput{Name: "Espresso cup", Price: 1200, Tags: []string{"kitchen"}},
		Headers: bearer(login.Token),
	})
	if err != nil {
		return errors.Join(errDemoFailed, err)
	}
	log.InfoContext(ctx, "product created", slog.String("id", created.ID))

	got := rpc.Call(ctx, c, a.get.Endpoint(), rpc.Args[route.None, route.None, ProductParams]{
		Params: &ProductParams{ID: created.ID},
	})
	if got == nil {
		return errDemoFailed
	}

	list := rpc.Call(ctx, c, a.list.Endpoint(), rpc.Args[route.None, ListQuery, route.None]{
		Query: &ListQuery{Tag: "kitchen", Sort: "price", Limit: 10},
	})
	if list == nil {
		return errDemoFailed
	}
	log.InfoContext(ctx, "products listed", slog.Int("count", len(*list)))

	access := rpc.Call(ctx, c, a.token.Endpoint(), rpc.Args[route.None, route.None, route.None]{
		Headers: bearer(login.Token),
	})
	if access == nil {
		return errDemoFailed
	}
	me := rpc.Call(ctx, c, a.me.Endpoint(), rpc.Args[route.None, route.None, route.None]{
		Headers: bearer(access.Token),
	})
	if me == nil {
		return errDemoFailed
	}
	log.InfoContext(ctx, "signed in", slog.String("user", me.Name))
	return nil
}

func runClient(ctx context.Context, cfg clientConfig, log *slog.Logger) error {
	a, err := clientAPI()
	if err != nil {
		return err
	}
	reg, err := a.registry()
	if err != nil {
		return err
	}

	c, err := rpc.NewFromConfig(cfg.RPC, reg,
		rpc.WithLogger(log),
		rpc.WithRequestHook(requestid.Propagate),
		rpc.WithHeader("User-Agent", "catalog-demo"),
		rpc.WithOnError(func(ctx context.Context, key route.Key, err error) {
			log.DebugContext(ctx, "call failed", logger.Route(key.String()), logger.Error(err))
		}),
	)
	if err != nil {
		return err
	}
	return demo(ctx, a, c, cfg.User, log)
}
