// Command checkin is a terminal client for the warehouse API: decode barcodes
// from image files or type them in, confirm quantities, and assign items to
// storage locations.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ghuser/stocktrack/client/checkin"
	"github.com/ghuser/stocktrack/client/state"
	"github.com/ghuser/stocktrack/client/warehouse"
)

// fileFrames is a FrameSource fed by the REPL: each "scan <path>" enqueues
// one decoded image as a frame.
type fileFrames struct {
	frames chan image.Image
}

func newFileFrames() *fileFrames {
	return &fileFrames{frames: make(chan image.Image, 4)}
}

func (f *fileFrames) Open(ctx context.Context) error { return nil }

func (f *fileFrames) NextFrame(ctx context.Context) (image.Image, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case img, ok := <-f.frames:
		if !ok {
			return nil, io.EOF
		}
		return img, nil
	}
}

func (f *fileFrames) Close() error { return nil }

func (f *fileFrames) enqueue(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close() //nolint:errcheck
	img, _, err := image.Decode(file)
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	f.frames <- img
	return nil
}

func main() {
	baseURL := os.Getenv("STOCKTRACK_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	client := warehouse.New(baseURL)
	items := state.NewItemStore()
	locations := state.NewLocationStore()
	sessions := state.NewSessionStore(filepath.Join(os.TempDir(), "stocktrack-session.json"))

	workflow := checkin.NewWorkflow(client, items)
	assigner := checkin.NewAssigner(client, items, locations)

	frames := newFileFrames()
	pulse := checkin.WithPulse(func(code string) { fmt.Printf("* detected %s\n", code) })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scanner, err := checkin.NewScanner(frames, checkin.NewZXingDetector(), pulse)
	switch {
	case errors.Is(err, checkin.ErrDetectorUnsupported):
		// No detector on this platform: barcodes must be typed in.
		fmt.Fprintln(os.Stderr, "barcode detection unavailable, use `code <barcode>`")
		scanner = checkin.NewManualScanner(pulse)
	case err != nil:
		fmt.Fprintln(os.Stderr, "scanner:", err)
		os.Exit(1)
	default:
		go func() {
			if err := scanner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				fmt.Fprintln(os.Stderr, "scanner stopped:", err)
			}
		}()
	}

	if err := workflow.Refresh(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "warning:", err)
	}
	if err := assigner.Refresh(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "warning:", err)
	}
	if session, err := sessions.Load(); err == nil && session != nil {
		fmt.Println("sales-order session active")
	}

	repl(ctx, replDeps{
		scanner:  scanner,
		frames:   frames,
		workflow: workflow,
		assigner: assigner,
		items:    items,
	})
}

type replDeps struct {
	scanner  *checkin.Scanner
	frames   *fileFrames
	workflow *checkin.Workflow
	assigner *checkin.Assigner
	items    *state.ItemStore
}

func repl(ctx context.Context, deps replDeps) {
	fmt.Println("commands: scan <file> | code <barcode> | pending | locations [term] | assign <item#> <loc#> | newloc <name> [desc] | quit")
	in := bufio.NewScanner(os.Stdin)

	var pending *checkin.Confirmation

	for {
		if pending != nil {
			fmt.Printf("confirm %s qty=%d  [+ - =N ok cancel]> ", pending.Detection().Barcode, pending.Quantity())
		} else {
			fmt.Print("> ")
		}
		if !in.Scan() {
			return
		}
		line := strings.TrimSpace(in.Text())
		if line == "" {
			// A detection may have arrived while idle.
			pending = takeDetection(deps.scanner, pending)
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		if pending != nil {
			pending = handleConfirm(ctx, deps, pending, cmd, args)
			continue
		}

		switch cmd {
		case "quit", "exit":
			return
		case "scan":
			if len(args) != 1 {
				fmt.Println("usage: scan <file>")
				continue
			}
			if err := deps.frames.enqueue(args[0]); err != nil {
				fmt.Println("error:", err)
			}
		case "code":
			if len(args) != 1 {
				fmt.Println("usage: code <barcode>")
				continue
			}
			if err := deps.scanner.ManualEntry(args[0]); err != nil {
				fmt.Println("error:", err)
			}
		case "pending":
			for i, item := range deps.items.Pending() {
				fmt.Printf("%d. %s  %s  x%d\n", i+1, item.Barcode, item.Name, item.Quantity)
			}
		case "locations":
			term := strings.Join(args, " ")
			for i, loc := range deps.assigner.Search(term) {
				fmt.Printf("%d. %s  %s\n", i+1, loc.Name, loc.Description)
			}
		case "assign":
			if len(args) != 2 {
				fmt.Println("usage: assign <item#> <loc#>")
				continue
			}
			assign(ctx, deps, args[0], args[1])
		case "newloc":
			if len(args) < 1 {
				fmt.Println("usage: newloc <name> [description]")
				continue
			}
			createLocation(ctx, deps, args[0], strings.Join(args[1:], " "))
		default:
			fmt.Println("unknown command:", cmd)
		}

		pending = takeDetection(deps.scanner, pending)
	}
}

// takeDetection picks up a waiting detection, if any, and opens a
// confirmation for it.
func takeDetection(scanner *checkin.Scanner, current *checkin.Confirmation) *checkin.Confirmation {
	if current != nil {
		return current
	}
	select {
	case d, ok := <-scanner.Detections():
		if !ok {
			return nil
		}
		return checkin.NewConfirmation(d)
	default:
		return nil
	}
}

func handleConfirm(ctx context.Context, deps replDeps, c *checkin.Confirmation, cmd string, args []string) *checkin.Confirmation {
	switch cmd {
	case "+":
		c.Increment()
		return c
	case "-":
		c.Decrement()
		return c
	case "ok":
		barcode, qty := c.Confirm()
		item, err := deps.workflow.CheckIn(ctx, barcode, qty)
		if err != nil {
			fmt.Println("error:", err)
			deps.scanner.Resolve(c.Detection(), false)
			return nil
		}
		fmt.Printf("checked in %s (%s) x%d\n", item.Name, item.Barcode, item.Quantity)
		deps.scanner.Resolve(c.Detection(), true)
		return nil
	case "cancel":
		deps.scanner.Resolve(c.Detection(), false)
		return nil
	default:
		if n, ok := strings.CutPrefix(cmd, "="); ok {
			if qty, err := strconv.Atoi(n); err == nil {
				c.Set(qty)
				return c
			}
		}
		fmt.Println("confirm with: + - =N ok cancel")
		return c
	}
}

func assign(ctx context.Context, deps replDeps, itemArg, locArg string) {
	itemIdx, err1 := strconv.Atoi(itemArg)
	locIdx, err2 := strconv.Atoi(locArg)
	if err1 != nil || err2 != nil {
		fmt.Println("usage: assign <item#> <loc#>")
		return
	}
	pendingItems := deps.items.Pending()
	locs := deps.assigner.Search("")
	if itemIdx < 1 || itemIdx > len(pendingItems) || locIdx < 1 || locIdx > len(locs) {
		fmt.Println("index out of range")
		return
	}
	item, err := deps.assigner.Assign(ctx, pendingItems[itemIdx-1].ID, locs[locIdx-1].ID)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("%s stored at %s\n", item.Name, locs[locIdx-1].Name)
}

func createLocation(ctx context.Context, deps replDeps, name, description string) {
	// Persist first; assignment is a separate step.
	pendingItems := deps.items.Pending()
	if len(pendingItems) == 0 {
		fmt.Println("no pending items; create via API instead")
		return
	}
	item, err := deps.assigner.CreateAndAssign(ctx, pendingItems[0].ID, warehouse.CreateLocationParams{
		Name:        name,
		Description: description,
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("%s stored at new location %s\n", item.Name, name)
}
