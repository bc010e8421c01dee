// Command stego is the CLI front end for the hide/unveil pipeline over PNG
// and WAV carriers.
//
// Grounded on zanicar/stegano's cmd/stegano/stegano.go: a subcommand
// dispatched on os.Args[1], flag.FlagSet per subcommand, and file-handle
// open/read/write around the core operation. Exit codes follow the
// specification's CLI contract rather than the teacher's plain "error or
// not" convention: 0 success, 1 user/input error, 2 capacity exceeded,
// 3 authentication failure, 4 I/O error.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joakimsorensen/stegolsb/container"
	"github.com/joakimsorensen/stegolsb/crypto"
	"github.com/joakimsorensen/stegolsb/media/png"
	"github.com/joakimsorensen/stegolsb/media/wav"
	"github.com/joakimsorensen/stegolsb/models"
	"github.com/joakimsorensen/stegolsb/service"
)

const (
	exitOK            = 0
	exitUserError     = 1
	exitCapacity      = 2
	exitAuthFailure   = 3
	exitIOError       = 4
)

func usage() {
	fmt.Fprintf(os.Stderr, "stego: correct usage:\n")
	fmt.Fprintf(os.Stderr, "\t> stego hide   --in <media> --out <media> (--data <path>...|--message <text>) [--password <pw>]\n")
	fmt.Fprintf(os.Stderr, "\t> stego unveil --in <media> --out <dir> [--password <pw>]\n")
	fmt.Fprintf(os.Stderr, "\t> stego unveil-raw --in <media> --out <file>\n")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(exitUserError)
	}

	var code int
	switch os.Args[1] {
	case "hide":
		code = runHide(os.Args[2:])
	case "unveil":
		code = runUnveil(os.Args[2:])
	case "unveil-raw":
		code = runUnveilRaw(os.Args[2:])
	default:
		usage()
		code = exitUserError
	}
	os.Exit(code)
}

type stringSlice []string

func (s *stringSlice) String() string { return strings.Join(*s, ",") }
func (s *stringSlice) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func runHide(args []string) int {
	fs := flag.NewFlagSet("hide", flag.ContinueOnError)
	in := fs.String("in", "", "path to cover media file")
	out := fs.String("out", "", "path to output media file")
	message := fs.String("message", "", "text message to conceal")
	password := fs.String("password", "", "passphrase; enables authenticated encryption")
	var dataFiles stringSlice
	fs.Var(&dataFiles, "data", "path to a file to conceal (repeatable)")

	if err := fs.Parse(args); err != nil {
		return exitUserError
	}
	if *in == "" || *out == "" || (*message == "" && len(dataFiles) == 0) {
		usage()
		return exitUserError
	}

	carrierBytes, err := os.ReadFile(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read input: %v\n", err)
		return exitIOError
	}
	carrier, serr := decodeCarrier(*in, carrierBytes)
	if serr != nil {
		fmt.Fprintf(os.Stderr, "%v\n", serr)
		return exitCodeFor(serr)
	}

	var entries []models.Entry
	for _, path := range dataFiles {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read data file %s: %v\n", path, err)
			return exitIOError
		}
		entries = append(entries, models.Entry{Name: models.Basename(path), Data: data})
	}

	policy := models.Policy{
		Framing:    models.FramingAuto,
		Encryption: models.EncryptionChoice{Enabled: *password != "", Passphrase: *password},
	}

	pipeline := service.NewPipeline(crypto.New(models.Argon2Params{}))
	result, serr := pipeline.Hide(service.HideInput{
		Carrier: carrier,
		Entries: entries,
		Text:    *message,
		HasText: *message != "",
		Policy:  policy,
	})
	if serr != nil {
		fmt.Fprintf(os.Stderr, "%v\n", serr)
		return exitCodeFor(serr)
	}

	encoded, serr := encodeCarrier(*in, result)
	if serr != nil {
		fmt.Fprintf(os.Stderr, "%v\n", serr)
		return exitCodeFor(serr)
	}
	if err := os.WriteFile(*out, encoded, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write output: %v\n", err)
		return exitIOError
	}
	return exitOK
}

func runUnveil(args []string) int {
	fs := flag.NewFlagSet("unveil", flag.ContinueOnError)
	in := fs.String("in", "", "path to stego media file")
	out := fs.String("out", "", "output directory for recovered entries")
	password := fs.String("password", "", "passphrase, if the payload was encrypted")

	if err := fs.Parse(args); err != nil {
		return exitUserError
	}
	if *in == "" || *out == "" {
		usage()
		return exitUserError
	}

	carrierBytes, err := os.ReadFile(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read input: %v\n", err)
		return exitIOError
	}
	carrier, serr := decodeCarrier(*in, carrierBytes)
	if serr != nil {
		fmt.Fprintf(os.Stderr, "%v\n", serr)
		return exitCodeFor(serr)
	}

	policy := models.Policy{Encryption: models.EncryptionChoice{Enabled: *password != "", Passphrase: *password}}
	pipeline := service.NewPipeline(crypto.New(models.Argon2Params{}))
	result, serr := pipeline.Unveil(carrier, policy)
	if serr != nil {
		fmt.Fprintf(os.Stderr, "%v\n", serr)
		return exitCodeFor(serr)
	}

	if err := os.MkdirAll(*out, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "create output directory: %v\n", err)
		return exitIOError
	}
	if result.HasText {
		textPath := filepath.Join(*out, models.ReservedTextEntryName)
		if err := os.WriteFile(textPath, []byte(result.Text), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "write %s: %v\n", textPath, err)
			return exitIOError
		}
	}
	for _, e := range result.Entries {
		if e.Name == models.ReservedTextEntryName && result.HasText {
			continue
		}
		path := filepath.Join(*out, e.Name)
		if err := os.WriteFile(path, e.Data, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "write %s: %v\n", path, err)
			return exitIOError
		}
	}
	return exitOK
}

// runUnveilRaw unveils a carrier without decryption and writes the
// recovered payload to a single file. A V1 text message is written as is.
// For V2/V4 the payload goes through the container reader and its entries
// are re-serialized into a new ZIP by container.Write, so the file is not
// byte-for-byte the ZIP that was embedded. An encrypted payload does not
// parse as a ZIP, and the command then exits with an error.
func runUnveilRaw(args []string) int {
	fs := flag.NewFlagSet("unveil-raw", flag.ContinueOnError)
	in := fs.String("in", "", "path to stego media file")
	out := fs.String("out", "", "output file for the raw recovered payload")

	if err := fs.Parse(args); err != nil {
		return exitUserError
	}
	if *in == "" || *out == "" {
		usage()
		return exitUserError
	}

	carrierBytes, err := os.ReadFile(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read input: %v\n", err)
		return exitIOError
	}
	carrier, serr := decodeCarrier(*in, carrierBytes)
	if serr != nil {
		fmt.Fprintf(os.Stderr, "%v\n", serr)
		return exitCodeFor(serr)
	}

	pipeline := service.NewPipeline(crypto.New(models.Argon2Params{}))
	result, serr := pipeline.Unveil(carrier, models.Policy{})
	if serr != nil {
		fmt.Fprintf(os.Stderr, "%v\n", serr)
		return exitCodeFor(serr)
	}

	var raw []byte
	if result.HasText && len(result.Entries) == 0 {
		raw = []byte(result.Text)
	} else {
		// content.txt, if present, is already among the entries.
		blob, serr := container.Write(result.Entries, "", false)
		if serr != nil {
			fmt.Fprintf(os.Stderr, "%v\n", serr)
			return exitCodeFor(serr)
		}
		raw = blob
	}
	if err := os.WriteFile(*out, raw, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write output: %v\n", err)
		return exitIOError
	}
	return exitOK
}

func decodeCarrier(path string, data []byte) (*models.Carrier, *models.StegoError) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		img, err := png.Decode(data)
		if err != nil {
			return nil, err
		}
		return &models.Carrier{Kind: models.CarrierImage, Image: img}, nil
	case ".wav":
		audio, err := wav.Decode(data)
		if err != nil {
			return nil, err
		}
		return &models.Carrier{Kind: models.CarrierAudio, Audio: audio}, nil
	default:
		return nil, models.ErrCarrierFormat
	}
}

func encodeCarrier(path string, carrier *models.Carrier) ([]byte, *models.StegoError) {
	switch carrier.Kind {
	case models.CarrierImage:
		return png.Encode(carrier.Image)
	case models.CarrierAudio:
		return wav.Encode(carrier.Audio)
	default:
		return nil, models.ErrCarrierFormat
	}
}

func exitCodeFor(err *models.StegoError) int {
	switch err.Kind {
	case models.KindCarrierTooSmall:
		return exitCapacity
	case models.KindAuthenticationFailed:
		return exitAuthFailure
	case models.KindIO:
		return exitIOError
	default:
		return exitUserError
	}
}
