package handler

import (
	"doodlepair/internal/app/pairing"
	"doodlepair/internal/app/user"
	"doodlepair/internal/configs"
)

type AppDeps struct {
	Config      *configs.AppConfig
	Engine      *pairing.Engine
	Provisioner *user.Provisioner
}
