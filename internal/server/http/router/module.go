package router

import (
	"go.uber.org/fx"

	pkgAuth "github.com/polkiloo/foodorders/internal/pkg/auth"
	"github.com/polkiloo/foodorders/internal/server/http/middleware"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Options(
	fx.Provide(func(s pkgAuth.Strategy) middleware.TokenParser { return s }),
	fx.Provide(Setup),
)
