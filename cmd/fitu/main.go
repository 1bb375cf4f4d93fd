// Command fitu is a client for the FitU outfit-recommendation service.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/yhs-2551/ai-outfit-recommendation/internal/api"
	"github.com/yhs-2551/ai-outfit-recommendation/internal/config"
	"github.com/yhs-2551/ai-outfit-recommendation/internal/errs"
	"github.com/yhs-2551/ai-outfit-recommendation/internal/logging"
	"github.com/yhs-2551/ai-outfit-recommendation/internal/model"
	"github.com/yhs-2551/ai-outfit-recommendation/internal/preview"
	"github.com/yhs-2551/ai-outfit-recommendation/internal/session"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func usage() {
	fmt.Fprintf(os.Stderr, `fitu CLI
Usage:
  fitu [-api URL] [-state DIR] <cmd> [args]

Commands:
  version
  register                                 (profile + wardrobe registration wizard)
  add                                      (stage and add items to an existing closet)
  closet                                   (browse and filter the closet)
  profile                                  (show the registered profile)
  profile-update [-age N] [-gender G] [-height N] [-weight N] [-skin S]
  body-image     -file <image>             (validate and attach a full-body photo)
  edit           -id <clothesId> -category C -type T -pattern P -tone TN [-image FILE | -image-url URL]
  rm             -id <clothesId>
  recommend      -occasion TEXT -date YYYY-MM-DD -place TEXT [-any-items]
`)
	os.Exit(2)
}

// app wires the shared components for one invocation.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	store    *session.Store
	client   *api.Client
	previews *preview.FileStore
}

func newApp(apiOverride, stateOverride string) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if apiOverride != "" {
		cfg.APIBaseURL = apiOverride
	}
	if stateOverride != "" {
		cfg.StateDir = stateOverride
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	store := session.NewStore(cfg.StateDir)
	previews, err := preview.NewFileStore(filepath.Join(cfg.StateDir, "previews"))
	if err != nil {
		return nil, err
	}
	client := api.New(cfg.APIBaseURL, cfg.RequestTimeout, store, log)
	return &app{cfg: cfg, log: log, store: store, client: client, previews: previews}, nil
}

func main() {
	apiURL := flag.String("api", "", "API base URL (overrides config)")
	stateDir := flag.String("state", "", "state directory (overrides config)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}
	cmd := flag.Arg(0)
	args := flag.Args()[1:]

	if cmd == "version" {
		fmt.Printf("fitu %s (%s)\n", version, buildDate)
		return
	}

	a, err := newApp(*apiURL, *stateDir)
	if err != nil {
		fail(err)
	}
	defer func() { _ = a.log.Sync() }()

	ctx := context.Background()

	switch cmd {
	case "register":
		err = a.cmdRegister(ctx)
	case "add":
		err = a.cmdAdd(ctx)
	case "closet":
		err = a.cmdCloset(ctx)
	case "profile":
		err = a.cmdProfile(ctx)
	case "profile-update":
		err = a.cmdProfileUpdate(ctx, args)
	case "body-image":
		err = a.cmdBodyImage(ctx, args)
	case "edit":
		err = a.cmdEdit(ctx, args)
	case "rm":
		err = a.cmdRemove(ctx, args)
	case "recommend":
		err = a.cmdRecommend(ctx, args)
	default:
		usage()
	}
	if err != nil {
		fail(err)
	}
}

func (a *app) cmdProfile(ctx context.Context) error {
	p, err := a.client.FetchProfile(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("age=%d gender=%s height=%dcm weight=%dkg skinTone=%s\n",
		p.Age, p.Gender, p.Height, p.Weight, p.SkinTone)
	if p.BodyImageURL != "" {
		fmt.Printf("bodyImage=%s\n", p.BodyImageURL)
	}
	return nil
}

func (a *app) cmdProfileUpdate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("profile-update", flag.ExitOnError)
	age := fs.Int("age", 0, "age")
	gender := fs.String("gender", "", "MALE or FEMALE")
	height := fs.Int("height", 0, "height in cm")
	weight := fs.Int("weight", 0, "weight in kg")
	skin := fs.String("skin", "", "WARM, COOL or NEUTRAL")
	_ = fs.Parse(args)

	var upd api.ProfileUpdate
	if *age != 0 {
		upd.Age = age
	}
	if *gender != "" {
		g := model.Gender(*gender)
		upd.Gender = &g
	}
	if *height != 0 {
		upd.Height = height
	}
	if *weight != 0 {
		upd.Weight = weight
	}
	if *skin != "" {
		s := model.SkinTone(*skin)
		upd.SkinTone = &s
	}
	if err := a.client.UpdateProfile(ctx, upd); err != nil {
		return err
	}
	fmt.Println("ok")
	return nil
}

func (a *app) cmdBodyImage(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("body-image", flag.ExitOnError)
	file := fs.String("file", "", "image file")
	_ = fs.Parse(args)
	if *file == "" {
		return errors.New("need -file")
	}

	res, err := a.client.AnalyzeBody(ctx, *file)
	if err != nil {
		return err
	}
	if res.Rejected() {
		fmt.Println("image rejected:")
		for _, w := range res.Warnings {
			fmt.Printf("  - %s\n", w)
		}
		return nil
	}
	a.store.SetBodyImageURL(res.HostedURL)
	url := res.HostedURL
	if _, ok := a.store.SessionID(); ok {
		if err := a.client.UpdateProfile(ctx, api.ProfileUpdate{BodyImageURL: &url}); err != nil {
			return err
		}
	}
	fmt.Printf("ok %s\n", res.HostedURL)
	return nil
}

func (a *app) cmdEdit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	id := fs.String("id", "", "closet item id")
	category := fs.String("category", "", "TOP, BOTTOM or ONEPIECE")
	typ := fs.String("type", "", "garment type")
	pattern := fs.String("pattern", "", "pattern")
	tone := fs.String("tone", "", "LIGHT, DARK or NOT_CONSIDERED")
	image := fs.String("image", "", "replacement image file")
	imageURL := fs.String("image-url", "", "hosted image URL to keep")
	_ = fs.Parse(args)
	if *id == "" {
		return errors.New("need -id")
	}
	if *image != "" && *imageURL != "" {
		return errors.New("-image and -image-url are mutually exclusive")
	}

	attrs := model.Attributes{
		Category: model.Category(strings.ToUpper(*category)),
		Type:     model.GarmentType(strings.ToUpper(*typ)),
		Pattern:  model.Pattern(strings.ToUpper(*pattern)),
		Tone:     model.Tone(strings.ToUpper(*tone)),
	}
	if err := attrs.Validate(); err != nil {
		return err
	}

	upd := api.ClosetItemUpdate{
		PrevImageURL: *imageURL,
		NewImagePath: *image,
		Attributes:   attrs,
	}
	if err := a.client.UpdateClosetItem(ctx, *id, upd); err != nil {
		return err
	}
	fmt.Println("ok")
	return nil
}

func (a *app) cmdRemove(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("rm", flag.ExitOnError)
	id := fs.String("id", "", "closet item id")
	_ = fs.Parse(args)
	if *id == "" {
		return errors.New("need -id")
	}
	if err := a.client.DeleteClosetItem(ctx, *id); err != nil {
		return err
	}
	fmt.Println("ok")
	return nil
}

func (a *app) cmdRecommend(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("recommend", flag.ExitOnError)
	occasion := fs.String("occasion", "", "what the outfit is for")
	date := fs.String("date", "", "date (YYYY-MM-DD, within 10 days)")
	place := fs.String("place", "", "where the outfit is worn")
	anyItems := fs.Bool("any-items", false, "allow items outside the closet")
	_ = fs.Parse(args)

	day, err := time.ParseInLocation("2006-01-02", *date, time.Local)
	if err != nil {
		return fmt.Errorf("parse -date: %w", err)
	}
	req := model.SituationRequest{
		Occasion:   *occasion,
		Date:       day,
		Place:      *place,
		ClosetOnly: !*anyItems,
	}
	if err := req.Validate(time.Now()); err != nil {
		return err
	}

	rec, err := a.client.Recommend(ctx, req)
	if err != nil {
		return err
	}
	fmt.Println(rec.Summary)
	if rec.Weather != "" {
		fmt.Printf("weather: %s\n", rec.Weather)
	}
	for i, ct := range rec.Contents {
		fmt.Printf("\n[%d] %s\n    %s\n", i+1, ct.Combination, ct.Description)
		if ct.ImageURL != "" {
			fmt.Printf("    %s\n", ct.ImageURL)
		}
	}
	return nil
}

func fail(err error) {
	var apiErr *api.Error
	switch {
	case errors.Is(err, errs.ErrUnauthorized):
		fmt.Fprintln(os.Stderr, "session rejected: run `fitu register` again")
	case errors.As(err, &apiErr):
		fmt.Fprintf(os.Stderr, "server error: status=%d op=%s\n", apiErr.Status, apiErr.Op)
	case errors.Is(err, errs.ErrNoSession):
		fmt.Fprintln(os.Stderr, "no session: run `fitu register` first")
	default:
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(1)
}
