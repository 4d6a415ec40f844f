package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/fermata-player/fermata/internal/config"
	"github.com/fermata-player/fermata/internal/engine/beepengine"
	"github.com/fermata-player/fermata/internal/equalizer"
	"github.com/fermata-player/fermata/internal/errs"
	"github.com/fermata-player/fermata/internal/logging"
	"github.com/fermata-player/fermata/internal/media"
	"github.com/fermata-player/fermata/internal/playlist"
	"github.com/fermata-player/fermata/internal/session"
	"github.com/fermata-player/fermata/internal/tags"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	playlistPath, historyPath, err := playlist.DefaultPaths()
	if err != nil {
		return err
	}
	if cfg.DataDir != "" {
		playlistPath = filepath.Join(cfg.DataDir, "playlist.json")
		historyPath = filepath.Join(cfg.DataDir, "history.json")
	}

	store := playlist.New(log.Named("playlist"), tags.NewReader(), playlistPath, historyPath)
	store.Load()

	eng := beepengine.New(log.Named("engine"))
	defer eng.Close()

	sess := session.New(log.Named("session"), store, eng)
	if err := sess.SetVolume(cfg.Volume); err != nil {
		log.Warn("configured volume out of range", zap.Float64("volume", cfg.Volume))
	}
	if err := sess.SetRate(cfg.Rate); err != nil {
		log.Warn("configured rate out of range", zap.Float64("rate", cfg.Rate))
	}
	if mode, err := session.ParseMode(cfg.Mode); err == nil {
		sess.SetMode(mode)
	} else {
		log.Warn("invalid configured mode", zap.String("mode", cfg.Mode))
	}

	eq := equalizer.New(log.Named("equalizer"), eng.EqualizerCapability())

	done := make(chan struct{})
	go sess.Run(done)

	shellLoop(sess, eq, store)

	close(done)
	if err := store.Save(); err != nil {
		// Advisory only; details already logged by the store.
		fmt.Fprintln(os.Stderr, errs.Format(errs.OpSavePlaylist, err))
	}
	return nil
}

func shellLoop(sess *session.Session, eq *equalizer.Adapter, store *playlist.Store) {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("fermata - type 'help' for commands")
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return
		}
		runCommand(sess, eq, store, fields[0], fields[1:])
	}
}

func runCommand(sess *session.Session, eq *equalizer.Adapter, store *playlist.Store, cmd string, args []string) {
	var err error
	switch cmd {
	case "help":
		printHelp()
	case "add":
		err = cmdAdd(sess, args)
	case "addfolder":
		err = cmdAddFolder(sess, args)
	case "remove":
		err = cmdRemove(sess, args)
	case "move":
		err = cmdMove(sess, args)
	case "moveto":
		err = cmdMoveTo(sess, args)
	case "assoc":
		err = cmdAssoc(sess, args)
	case "list":
		printItems(store.Items(), sess.CurrentIndex())
	case "history":
		printItems(store.History(), -1)
	case "play":
		err = cmdPlay(sess, args)
	case "pause":
		err = sess.Pause()
	case "resume":
		err = sess.Resume()
	case "stop":
		err = sess.Stop()
	case "next":
		err = sess.Next()
	case "prev":
		err = sess.Prev()
	case "mode":
		err = cmdMode(sess, args)
	case "vol":
		err = cmdFloat(args, sess.SetVolume)
	case "rate":
		err = cmdFloat(args, sess.SetRate)
	case "seek":
		err = cmdSeek(sess, args)
	case "status":
		printStatus(sess.Status())
	case "eq":
		err = cmdEq(eq, args)
	case "save":
		err = store.Save()
	case "clear":
		sess.Clear()
	default:
		fmt.Printf("unknown command %q\n", cmd)
	}
	if err != nil {
		fmt.Println(err)
	}
}

func cmdAdd(sess *session.Session, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: add <path|url>")
	}
	item, err := sess.Add(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("added %s\n", item.Title)
	return nil
}

func cmdAddFolder(sess *session.Session, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: addfolder <dir>")
	}
	added, err := sess.AddFolder(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("added %d files\n", added)
	return nil
}

func cmdRemove(sess *session.Session, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: remove <index>...")
	}
	indices := make([]int, 0, len(args))
	for _, arg := range args {
		idx, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("invalid index %q", arg)
		}
		indices = append(indices, idx)
	}
	fmt.Printf("removed %d items\n", sess.Remove(indices))
	return nil
}

func cmdMove(sess *session.Session, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: move <index> up|down")
	}
	idx, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid index %q", args[0])
	}
	switch args[1] {
	case "up":
		return sess.Move(idx, playlist.Up)
	case "down":
		return sess.Move(idx, playlist.Down)
	default:
		return fmt.Errorf("direction must be up or down")
	}
}

func cmdMoveTo(sess *session.Session, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: moveto <source> <target>")
	}
	src, err1 := strconv.Atoi(args[0])
	tgt, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		return fmt.Errorf("invalid indices")
	}
	return sess.MoveToPosition(src, tgt)
}

func cmdAssoc(sess *session.Session, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: assoc <index> lyrics|cover|subtitle <path>")
	}
	idx, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid index %q", args[0])
	}
	var assoc playlist.Association
	switch args[1] {
	case "lyrics":
		assoc = playlist.AssocLyrics
	case "cover":
		assoc = playlist.AssocCover
	case "subtitle":
		assoc = playlist.AssocSubtitle
	default:
		return fmt.Errorf("association must be lyrics, cover, or subtitle")
	}
	return sess.SetAssociation(idx, assoc, args[2])
}

func cmdPlay(sess *session.Session, args []string) error {
	if len(args) == 0 {
		return sess.Play()
	}
	idx, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid index %q", args[0])
	}
	return sess.PlayIndex(idx)
}

func cmdMode(sess *session.Session, args []string) error {
	if len(args) == 0 {
		fmt.Println(sess.CycleMode())
		return nil
	}
	mode, err := session.ParseMode(args[0])
	if err != nil {
		return err
	}
	sess.SetMode(mode)
	return nil
}

func cmdFloat(args []string, set func(float64) error) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: <value>")
	}
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid value %q", args[0])
	}
	return set(v)
}

func cmdSeek(sess *session.Session, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: seek <seconds>")
	}
	sec, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid position %q", args[0])
	}
	return sess.SeekMs(int64(sec * 1000))
}

func cmdEq(eq *equalizer.Adapter, args []string) error {
	if len(args) == 0 {
		st := eq.State()
		fmt.Printf("preamp: %.1f dB\n", st.Preamp)
		for _, b := range st.Bands {
			fmt.Printf("band %d (%.0f Hz): %.1f dB\n", b.Index, b.Frequency, b.Gain)
		}
		return nil
	}
	switch args[0] {
	case "preamp":
		if len(args) != 2 {
			return fmt.Errorf("usage: eq preamp <db>")
		}
		db, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid gain %q", args[1])
		}
		return eq.SetPreampGain(db)
	case "band":
		if len(args) != 3 {
			return fmt.Errorf("usage: eq band <index> <db>")
		}
		idx, err1 := strconv.Atoi(args[1])
		db, err2 := strconv.ParseFloat(args[2], 64)
		if err1 != nil || err2 != nil {
			return fmt.Errorf("invalid band arguments")
		}
		return eq.SetBandGain(idx, db)
	default:
		return fmt.Errorf("usage: eq [preamp <db> | band <index> <db>]")
	}
}

func printItems(items []media.Item, current int) {
	if len(items) == 0 {
		fmt.Println("(empty)")
		return
	}
	for i, item := range items {
		marker := "  "
		if i == current {
			marker = "> "
		}
		fmt.Printf("%s[%d] %s - %s (%s)\n", marker, i, item.Artist, item.Title, item.Kind)
	}
}

func printHelp() {
	fmt.Print(`commands:
  add <path|url>          add a file or stream to the playlist
  addfolder <dir>         add all supported files in a folder
  remove <i>...           remove items by index
  move <i> up|down        move an item one step
  moveto <src> <tgt>      move an item to a position
  assoc <i> <kind> <path> attach lyrics, cover, or subtitle
  list / history          show playlist / play history
  play [i]                play current or given index
  pause / resume / stop   playback control
  next / prev             sequencing per current mode
  mode [name]             cycle or set playback mode
  vol <0..1>              set volume
  rate <0.1..4>           set playback rate
  seek <seconds>          seek to position
  status                  show playback status and active lyric
  eq ...                  equalizer control
  save                    persist playlist and history
  clear                   clear the playlist
  quit                    save and exit
`)
}

func printStatus(st session.Status) {
	if !st.HasItem {
		fmt.Printf("%s | nothing selected | mode %s\n", st.State, st.Mode)
		return
	}
	fmt.Printf("%s | [%d] %s - %s | %s/%s | vol %.0f%% rate %.2fx | mode %s\n",
		st.State, st.Index, st.Item.Artist, st.Item.Title,
		st.Elapsed, st.Total, st.Volume*100, st.Rate, st.Mode)
	if st.LyricIndex >= 0 && st.LyricIndex < len(st.Lyrics) {
		fmt.Printf("lyric: %s\n", st.Lyrics[st.LyricIndex].Text)
	}
}
