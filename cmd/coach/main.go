package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pnthancyb/devchess-sub000/config"
	"github.com/pnthancyb/devchess-sub000/engine"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger := zap.NewNop()
	if cfg.Logs.Level == "debug" {
		logger, err = zap.NewDevelopment()
		if err != nil {
			fmt.Fprintln(os.Stderr, "logger:", err)
			os.Exit(1)
		}
	}
	defer logger.Sync()

	eng, err := engine.New(engine.Config{
		CacheSize: cfg.Engine.CacheSize,
		Logger:    logger,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "engine:", err)
		os.Exit(1)
	}

	coachLoop(eng, cfg)
}

func coachLoop(eng *engine.Engine, cfg *config.Config) {
	scanner := bufio.NewScanner(os.Stdin)
	pos := engine.StartPos
	tier := cfg.Engine.DefaultTier
	deadline := time.Duration(cfg.Engine.MoveDeadline) * time.Millisecond
	var history []engine.Verdict

	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "quit":
			return
		case "newgame":
			pos = engine.StartPos
			history = history[:0]
			eng.ResetCache()
			fmt.Println("ok")
		case "position":
			if len(tokens) < 2 {
				fmt.Println("usage: position startpos | position fen <fen>")
				continue
			}
			if strings.ToLower(tokens[1]) == "startpos" {
				pos = engine.StartPos
				fmt.Println("ok")
				continue
			}
			if strings.ToLower(tokens[1]) == "fen" && len(tokens) >= 3 {
				fen := engine.Position(strings.Join(tokens[2:], " "))
				if _, err := eng.Rules().LegalMoves(fen); err != nil {
					fmt.Println("bad fen:", err)
					continue
				}
				pos = fen
				fmt.Println("ok")
				continue
			}
			fmt.Println("usage: position startpos | position fen <fen>")
		case "tier":
			if len(tokens) < 2 {
				fmt.Println("tier", tier)
				continue
			}
			t, err := strconv.Atoi(tokens[1])
			if err != nil || t < engine.MinTier || t > engine.MaxTier {
				fmt.Printf("tier must be %d..%d\n", engine.MinTier, engine.MaxTier)
				continue
			}
			tier = t
			fmt.Println("ok")
		case "play":
			if len(tokens) < 2 {
				fmt.Println("usage: play <uci move>")
				continue
			}
			verdict, err := eng.EvaluateMove(pos, tokens[1])
			if err != nil {
				fmt.Println("rejected:", err)
				continue
			}
			history = append(history, verdict)
			pos = verdict.Move.After
			fmt.Printf("%s  %s (%+d)\n", verdict.Move.SAN, verdict.Quality, verdict.Delta)
		case "go":
			ctx, cancel := context.WithTimeout(context.Background(), deadline)
			move, err := eng.RequestMove(ctx, pos, tier)
			cancel()
			if err != nil {
				fmt.Println("no move:", err)
				continue
			}
			pos = move.After
			fmt.Println("bestmove", move.UCI)
		case "eval":
			score, err := eng.EvaluatePosition(pos)
			if err != nil {
				fmt.Println("eval failed:", err)
				continue
			}
			fmt.Println("score cp", score)
		case "feedback":
			fmt.Println(eng.GenerateFeedback(pos, history))
		case "fen":
			fmt.Println(pos)
		default:
			fmt.Println("commands: position, play, go, tier, eval, feedback, fen, newgame, quit")
		}
	}
}
