package main

import (
	"context"
	"log"

	"patient-migration-core/internal/app"

	"go.uber.org/fx"
)

func main() {

	fx.New(
		app.AppModule,
		fx.Invoke(func(lifecycle fx.Lifecycle) {
			lifecycle.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					log.Println("Patient Migration API starting...")
					return nil
				},
				OnStop: func(ctx context.Context) error {
					log.Println("Patient Migration API stopping...")
					return nil
				},
			})
		}),
	).Run()
}
