package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yhs-2551/ai-outfit-recommendation/internal/closet"
	"github.com/yhs-2551/ai-outfit-recommendation/internal/errs"
	"github.com/yhs-2551/ai-outfit-recommendation/internal/filter"
	"github.com/yhs-2551/ai-outfit-recommendation/internal/model"
	"github.com/yhs-2551/ai-outfit-recommendation/internal/upload"
)

// cmdRegister runs the first-time registration flow: profile, optional body
// image, wardrobe staging, and the single combined registration call.
func (a *app) cmdRegister(ctx context.Context) error {
	if _, ok := a.store.SessionID(); ok {
		// Returning users add to their closet instead of re-registering.
		fmt.Println("already registered; use `fitu add`")
		return nil
	}

	in := bufio.NewReader(os.Stdin)

	p, err := promptProfile(in)
	if err != nil {
		return err
	}
	a.store.SetProfile(p)

	if path := prompt(in, "full-body image path (optional)"); path != "" {
		res, err := a.client.AnalyzeBody(ctx, path)
		switch {
		case err != nil:
			fmt.Println("body image validation failed; continuing without it")
		case res.Rejected():
			fmt.Println("body image rejected:")
			for _, w := range res.Warnings {
				fmt.Printf("  - %s\n", w)
			}
		default:
			a.store.SetBodyImageURL(res.HostedURL)
		}
	}

	fmt.Println("\nStage at least 3 tops and 3 bottoms, then `done`.")
	return a.stagingLoop(ctx, in, true)
}

// cmdAdd stages items against an existing closet.
func (a *app) cmdAdd(ctx context.Context) error {
	if _, ok := a.store.SessionID(); !ok {
		return errs.ErrNoSession
	}
	fmt.Println("Stage items, then `done` to add them to your closet.")
	return a.stagingLoop(ctx, bufio.NewReader(os.Stdin), false)
}

// stagingLoop drives the waitlist until the user finalizes or quits.
func (a *app) stagingLoop(ctx context.Context, in *bufio.Reader, firstRegistration bool) error {
	up := upload.New(a.previews, a.client, a.log)
	wl := closet.New(a.previews, a.store, a.client, a.log)

	for {
		line := prompt(in, fmt.Sprintf("(%d staged)", wl.Len()))
		cmd, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)

		switch cmd {
		case "add", "drop":
			if rest == "" {
				fmt.Println("usage: add <image path>")
				continue
			}
			var err error
			if cmd == "drop" {
				err = up.Drop(ctx, rest)
			} else {
				err = up.Accept(ctx, rest)
			}
			switch {
			case errors.Is(err, errs.ErrAnalysisFailed):
				fmt.Println("analysis failed; tag the item manually with `attrs`")
			case err != nil:
				fmt.Println(err)
			default:
				if attrs := up.Attributes(); attrs.Complete() {
					fmt.Printf("analyzed: %s %s %s %s\n",
						attrs.Category, attrs.Type, attrs.Pattern, attrs.Tone)
				}
			}

		case "attrs":
			parts := strings.Fields(rest)
			if len(parts) != 4 {
				fmt.Println("usage: attrs CATEGORY TYPE PATTERN TONE")
				continue
			}
			attrs := model.Attributes{
				Category: model.Category(strings.ToUpper(parts[0])),
				Type:     model.GarmentType(strings.ToUpper(parts[1])),
				Pattern:  model.Pattern(strings.ToUpper(parts[2])),
				Tone:     model.Tone(strings.ToUpper(parts[3])),
			}
			if err := attrs.Validate(); err != nil {
				fmt.Println(err)
				continue
			}
			up.SetAttributes(attrs)

		case "stage":
			item, err := wl.Add(up, up.Attributes())
			switch {
			case errors.Is(err, errs.ErrImageRequired):
				fmt.Println("add an image first")
			case errors.Is(err, errs.ErrIncompleteAttributes):
				fmt.Println("select all four attributes (category, type, pattern, tone) first")
			case err != nil:
				fmt.Println(err)
			default:
				fmt.Printf("staged %s\n", item.ID)
			}

		case "list":
			for _, it := range wl.Items() {
				img := it.HostedURL
				if img == "" {
					img = it.File
				}
				fmt.Printf("%s  %-8s %-10s %-9s %-14s %s\n", it.ID,
					it.Attributes.Category, it.Attributes.Type,
					it.Attributes.Pattern, it.Attributes.Tone, img)
			}

		case "rm":
			if err := wl.Remove(rest); err != nil {
				fmt.Println(err)
			}

		case "remove":
			if err := up.Remove(); err != nil {
				fmt.Println(err)
			}

		case "back":
			if !firstRegistration {
				fmt.Println("nothing to go back to; `quit` to abort")
				continue
			}
			outcome, err := wl.Finalize(ctx, closet.Back)
			if err != nil {
				fmt.Println(finalizeMessage(err))
				continue
			}
			if outcome == closet.OutcomeBack {
				fmt.Println("returning to profile entry; staged items kept for this run")
				p, perr := promptProfile(in)
				if perr != nil {
					return perr
				}
				a.store.SetProfile(p)
			}

		case "done":
			outcome, err := wl.Finalize(ctx, closet.Forward)
			if err != nil {
				fmt.Println(finalizeMessage(err))
				continue
			}
			switch outcome {
			case closet.OutcomeRegistered:
				a.store.ResetProfile()
				id, _ := a.store.SessionID()
				fmt.Printf("registration complete; session %s\n", id)
			case closet.OutcomeAdded:
				fmt.Println("items added to your closet")
			}
			return nil

		case "quit":
			return nil

		case "help", "":
			fmt.Println("commands: add <path> | drop <path> | attrs C T P T | stage | list | rm <id> | remove | back | done | quit")

		default:
			fmt.Printf("unknown command %q (try `help`)\n", cmd)
		}
	}
}

// finalizeMessage maps finalize errors to the user-facing messages of the flow.
func finalizeMessage(err error) string {
	switch {
	case errors.Is(err, errs.ErrEmptyWaitlist):
		return "stage at least one item first"
	case errors.Is(err, errs.ErrRequirementsNotMet):
		return "style suggestions need at least 3 tops and 3 bottoms staged"
	default:
		return fmt.Sprintf("registration failed, please try again: %v", err)
	}
}

// cmdCloset browses the persisted closet with the faceted filter.
func (a *app) cmdCloset(ctx context.Context) error {
	if _, ok := a.store.SessionID(); !ok {
		return errs.ErrNoSession
	}

	ctrl := filter.New(ctx, a.client, a.cfg.DebounceWindow, a.log)
	defer ctrl.Close()
	if err := ctrl.Load(); err != nil {
		return err
	}
	printItems(ctrl.Results())

	in := bufio.NewReader(os.Stdin)
	for {
		line := prompt(in, "filter")
		cmd, rest, _ := strings.Cut(line, " ")

		switch cmd {
		case "category":
			vals, err := splitValues(rest, func(s string) (model.Category, bool) {
				c := model.Category(s)
				return c, c.Valid()
			})
			if err != nil {
				fmt.Println(err)
				continue
			}
			ctrl.SetCategories(vals)
		case "type":
			vals, err := splitValues(rest, func(s string) (model.GarmentType, bool) {
				t := model.GarmentType(s)
				return t, t.Valid()
			})
			if err != nil {
				fmt.Println(err)
				continue
			}
			ctrl.SetTypes(vals)
		case "pattern":
			vals, err := splitValues(rest, func(s string) (model.Pattern, bool) {
				p := model.Pattern(s)
				return p, p.Valid()
			})
			if err != nil {
				fmt.Println(err)
				continue
			}
			ctrl.SetPatterns(vals)
		case "tone":
			vals, err := splitValues(rest, func(s string) (model.Tone, bool) {
				t := model.Tone(s)
				return t, t.Valid()
			})
			if err != nil {
				fmt.Println(err)
				continue
			}
			ctrl.SetTones(vals)
		case "all":
			ctrl.SetAllFilters(model.SelectAll())
		case "reset":
			ctrl.SetAllFilters(model.FilterSelection{})
		case "show":
			ctrl.Flush()
			if err := ctrl.Err(); err != nil {
				fmt.Printf("filter query failed, please try again: %v\n", err)
				continue
			}
			printItems(ctrl.Results())
		case "quit":
			return nil
		case "help", "":
			fmt.Println("commands: category V,V | type V,V | pattern V,V | tone V,V | all | reset | show | quit")
		default:
			fmt.Printf("unknown command %q (try `help`)\n", cmd)
		}
	}
}

func printItems(items []model.ClosetItem) {
	if len(items) == 0 {
		fmt.Println("no items")
		return
	}
	for _, it := range items {
		fmt.Printf("%s  %-8s %-10s %-9s %-14s %s\n", it.ID,
			it.Attributes.Category, it.Attributes.Type,
			it.Attributes.Pattern, it.Attributes.Tone, it.ImageURL)
	}
}

// splitValues parses a comma-separated value list into a typed slice.
func splitValues[T any](s string, parse func(string) (T, bool)) ([]T, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var out []T
	for _, raw := range strings.Split(s, ",") {
		v, ok := parse(strings.ToUpper(strings.TrimSpace(raw)))
		if !ok {
			return nil, fmt.Errorf("unknown value %q", raw)
		}
		out = append(out, v)
	}
	return out, nil
}

// ---- prompt helpers ----

func prompt(in *bufio.Reader, label string) string {
	fmt.Printf("%s> ", label)
	line, err := in.ReadString('\n')
	if err != nil {
		return "quit"
	}
	return strings.TrimSpace(line)
}

func promptInt(in *bufio.Reader, label string) (int, error) {
	v, err := strconv.Atoi(prompt(in, label))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", label, err)
	}
	return v, nil
}

// promptProfile collects and validates the demographic attributes.
func promptProfile(in *bufio.Reader) (model.Profile, error) {
	age, err := promptInt(in, "age")
	if err != nil {
		return model.Profile{}, err
	}
	gender := model.Gender(strings.ToUpper(prompt(in, "gender (MALE/FEMALE)")))
	height, err := promptInt(in, "height (cm)")
	if err != nil {
		return model.Profile{}, err
	}
	weight, err := promptInt(in, "weight (kg)")
	if err != nil {
		return model.Profile{}, err
	}
	skin := model.SkinTone(strings.ToUpper(prompt(in, "skin tone (WARM/COOL/NEUTRAL)")))

	p := model.Profile{Age: age, Gender: gender, Height: height, Weight: weight, SkinTone: skin}
	if err := p.Validate(); err != nil {
		return model.Profile{}, err
	}
	return p, nil
}
