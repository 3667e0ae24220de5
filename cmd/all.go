package cmd

import (
	_ "graphstack-keeper/cmd/images"
	_ "graphstack-keeper/cmd/root"
	_ "graphstack-keeper/cmd/server"
	_ "graphstack-keeper/cmd/service"
	_ "graphstack-keeper/cmd/stack"
)
