package convert

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
)

// ToMP3 re-encodes any audio or video ffmpeg understands into MP3.
func ToMP3(ctx context.Context, input []byte) ([]byte, error) {
	// -i pipe:0 reads stdin, -vn drops any video stream, pipe:1 writes stdout.
	cmd := exec.CommandContext(ctx,
		"ffmpeg",
		"-i", "pipe:0",
		"-vn",
		"-f", "mp3",
		"pipe:1",
		"-y",
	)

	cmd.Stdin = bytes.NewReader(input)

	var out bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg error: %v, details: %s", err, stderr.String())
	}

	return out.Bytes(), nil
}

// JPEG converts an uploaded image to JPEG. HEIC/HEIF goes through
// heif-convert, everything else through ffmpeg.
func JPEG(ctx context.Context, input []byte, isHEIC bool) ([]byte, error) {
	if !isHEIC {
		cmd := exec.CommandContext(ctx, "ffmpeg",
			"-i", "pipe:0",
			"-f", "image2",
			"-vframes", "1",
			"-vcodec", "mjpeg",
			"pipe:1",
		)
		cmd.Stdin = bytes.NewReader(input)

		var out, stderr bytes.Buffer
		cmd.Stdout = &out
		cmd.Stderr = &stderr

		if err := cmd.Run(); err != nil {
			return nil, fmt.Errorf("ffmpeg error: %v, details: %s", err, stderr.String())
		}
		return out.Bytes(), nil
	}

	inFile, err := os.CreateTemp("", "heic-input-*.heic")
	if err != nil {
		return nil, fmt.Errorf("error creating temp input file: %w", err)
	}
	defer os.Remove(inFile.Name())

	_, err = inFile.Write(input)
	inFile.Close()
	if err != nil {
		return nil, fmt.Errorf("error writing to temp input file: %w", err)
	}

	outFile, err := os.CreateTemp("", "heic-output-*.jpg")
	if err != nil {
		return nil, fmt.Errorf("error creating temp output file: %w", err)
	}
	outName := outFile.Name()
	outFile.Close()
	defer os.Remove(outName)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "heif-convert", inFile.Name(), outName)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("heif-convert error: %v, details: %s", err, stderr.String())
	}

	return os.ReadFile(outName)
}
