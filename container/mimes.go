package container

import "github.com/h2non/filetype/matchers"

var (
	MimeWEBP = matchers.TypeWebp.MIME.Value
	MimeGIF  = matchers.TypeGif.MIME.Value
	MimePNG  = matchers.TypePng.MIME.Value
	MimeJPEG = matchers.TypeJpeg.MIME.Value
	MimeBMP  = matchers.TypeBmp.MIME.Value
	MimeTIFF = matchers.TypeTiff.MIME.Value
)
