//go:build wireinject

package main

import (
	"github.com/google/wire"
)

func BuildRunner(args Args) (*Runner, error) {
	wire.Build(
		ProvideLogger,
		ProvideRoot,
		ProvideRules,
		ProvideCollector,
		ProvideCounter,
		ProvideSettings,
		wire.Struct(new(Runner), "*"),
	)
	return nil, nil
}
