package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sir_venger/filedrop/internal/cli"
	"github.com/sir_venger/filedrop/pkg/uploadclient"
)

var rootCommand = &cobra.Command{
	Use:   "filedrop-upload [flags] FILE...",
	Short: "Upload files to a filedrop server in a single multipart request",
	Args:  cobra.MinimumNArgs(1),
	Run:   cli.Mainify(uploadMain),
}

var uploadConfiguration struct {
	url   string
	quiet bool
}

func init() {
	flags := rootCommand.Flags()
	flags.SortFlags = false
	flags.StringVarP(&uploadConfiguration.url, "url", "u", "http://localhost:3000", "Base URL of the server")
	flags.BoolVarP(&uploadConfiguration.quiet, "quiet", "q", false, "Don't render progress")
}

func uploadMain(_ *cobra.Command, paths []string) error {
	files := make([]uploadclient.File, 0, len(paths))
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return errors.Wrap(err, "unable to open file")
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			return errors.Wrapf(err, "unable to stat %s", path)
		}
		if info.IsDir() {
			return errors.Errorf("%s is a directory", path)
		}

		files = append(files, uploadclient.File{
			Name:   filepath.Base(path),
			Reader: f,
			Size:   info.Size(),
		})
	}

	var progress io.Writer = os.Stdout
	if uploadConfiguration.quiet {
		progress = nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := uploadclient.New(progress).Upload(ctx, uploadConfiguration.url, files)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%d file(s), upload id %s)\n", res.Message, len(files), res.UploadID)
	return nil
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		os.Exit(1)
	}
}
