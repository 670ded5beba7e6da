package io

import (
	"github.com/ezrec/zenith/translate"
)

var (
	// Channel errors
	ErrChannelEmpty  = translate.Error("channel empty")
	ErrChannelClosed = translate.Error("channel closed")

	// Image errors
	ErrImageSize = translate.Error("image exceeds memory")
)
