package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bmoreira/frasecli/internal/api"
	"github.com/bmoreira/frasecli/internal/autotype"
	"github.com/bmoreira/frasecli/internal/cache"
	"github.com/bmoreira/frasecli/internal/capability"
	"github.com/bmoreira/frasecli/internal/config"
	"github.com/bmoreira/frasecli/internal/controller"
	"github.com/bmoreira/frasecli/internal/hotkey"
	"github.com/bmoreira/frasecli/internal/probe"
	"github.com/bmoreira/frasecli/internal/session"
	"github.com/bmoreira/frasecli/internal/tasks"
	"github.com/bmoreira/frasecli/internal/ui"
	"github.com/bmoreira/frasecli/internal/ui/embedded"
	"github.com/bmoreira/frasecli/internal/ui/native"
	"github.com/bmoreira/frasecli/internal/ui/offline"
)

// runClient wires the whole client together and hands control to the mode
// selector. Errors here are the only fatal path; everything after startup
// degrades instead of exiting.
func runClient() error {
	cfg, err := config.Load(flagServer)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := cache.NewManager(config.CachePath)
	if err != nil {
		return err
	}
	defer store.Close()

	client := api.NewClient(cfg.ServerURL, cfg.ProbeTimeout())

	caps := capability.Set{
		Embedding: capability.DetectEmbedding(cfg.EmbeddedView),
	}

	injector, _, err := autotype.NewSystemInjector()
	if err != nil {
		caps.AutoType = capability.Missing(err.Error())
	} else {
		caps.AutoType = capability.Available()
	}

	keySource, err := hotkey.NewSystemSource()
	if err != nil {
		caps.Hotkeys = capability.Missing(err.Error())
	} else {
		caps.Hotkeys = capability.Available()
	}

	mailbox := &tasks.Mailbox{}
	coordinator := tasks.New(mailbox, cfg.TriggerDelay())

	sess := &session.Session{}
	holder := &session.SnapshotHolder{}
	holder.Publish(sess.Snapshot())

	var typeAction tasks.Action
	if caps.AutoType.Available {
		typist := autotype.NewTypist(injector)
		defer typist.Close()
		typeAction = typist.Action()
	} else {
		reason := caps.AutoType.Reason
		typeAction = func(session.Snapshot) (string, error) {
			return "", fmt.Errorf("auto-type unavailable: %s", reason)
		}
	}

	syncAction := func(session.Snapshot) (string, error) {
		n, err := store.SyncFrom(context.Background(), client)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Synced %d phrases to cache", n), nil
	}

	if caps.Hotkeys.Available {
		bindings, err := hotkey.LoadBindings(config.BindingsFile)
		if err != nil {
			return err
		}
		listener := hotkey.NewListener(keySource, bindings, func(action string) {
			switch action {
			case hotkey.ActionTypePhrase:
				coordinator.Submit(typeAction, holder.Load())
			case hotkey.ActionSyncCache:
				coordinator.Submit(syncAction, holder.Load())
			}
		})
		if err := listener.Start(); err != nil {
			return err
		}
		defer listener.Stop()
	}

	factory := &surfaceFactory{
		serverURL: cfg.ServerURL,
		mailbox:   mailbox,
		deps: native.Deps{
			Client:      client,
			Cache:       store,
			Coordinator: coordinator,
			Session:     sess,
			Holder:      holder,
			Caps:        caps,
			TypeAction:  typeAction,
			SyncAction:  syncAction,
		},
	}

	ctl := controller.New(cfg.ServerURL, cfg.ProbeTimeout(), caps, sess, holder, factory)
	return ctl.Run(ctx)
}

// surfaceFactory builds the surface for each stable mode.
type surfaceFactory struct {
	serverURL string
	mailbox   *tasks.Mailbox
	deps      native.Deps
}

func (f *surfaceFactory) Embedded() ui.Surface {
	return embedded.NewSurface(f.serverURL, f.mailbox)
}

func (f *surfaceFactory) Native(degraded string) ui.Surface {
	deps := f.deps
	deps.Degraded = degraded
	return native.NewSurface(deps, f.mailbox)
}

func (f *surfaceFactory) Offline(detail string, probeFn func() probe.Result) ui.Surface {
	return offline.NewSurface(detail, probeFn)
}
