package app

import (
	"github.com/vk/shipgridgo/internal/registry"
	"github.com/vk/shipgridgo/modules/command"
	"github.com/vk/shipgridgo/modules/django"
	"github.com/vk/shipgridgo/modules/env_vars"
	"github.com/vk/shipgridgo/modules/http_check"
	"github.com/vk/shipgridgo/modules/nltk"
	"github.com/vk/shipgridgo/modules/npm"
	"github.com/vk/shipgridgo/modules/pip"
	"github.com/vk/shipgridgo/modules/print"
	"github.com/vk/shipgridgo/modules/tailwind"
)

// coreModules is the definitive list of all step modules that are compiled
// into the shipgridgo binary.
var coreModules = []registry.Module{
	&pip.Module{},
	&npm.Module{},
	&nltk.Module{},
	&django.Module{},
	&tailwind.Module{},
	&command.Module{},
	&env_vars.Module{},
	&print.Module{},
	&http_check.Module{},
}
