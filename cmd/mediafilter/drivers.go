package main

// Registered frame sources.
import (
	_ "github.com/pion/mediafilter/pkg/driver/camera"
	_ "github.com/pion/mediafilter/pkg/driver/screen"
	_ "github.com/pion/mediafilter/pkg/driver/videotest"
)
