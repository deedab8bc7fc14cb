package command

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"onenight/internal/bot"
	"onenight/internal/engine"
)

// defaultDeck is drawn from in order when no role mix is given. The Masons
// only come as a pair, so they join once the single cards run short.
var defaultDeck = []string{
	"Werewolf", "Seer", "Robber", "Troublemaker", "Villager",
	"Minion", "Insomniac", "Drunk", "Tanner", "Hunter", "Doppelganger",
}

func defaultMix(players int) (map[string]int, error) {
	n := players + engine.CenterSize
	if players < 1 || n > len(defaultDeck)+2 {
		return nil, fmt.Errorf("no default role mix for %d players, pass --roles", players)
	}
	mix := make(map[string]int)
	if n > len(defaultDeck) {
		mix["Mason"] = 2
		n -= 2
	}
	for _, name := range defaultDeck[:n] {
		mix[name]++
	}
	return mix, nil
}

func NewSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play one game between bots and print the outcome",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			defer log.Sync()

			players, _ := cmd.Flags().GetInt("players")
			mix, _ := cmd.Flags().GetStringToInt("roles")
			seed, _ := cmd.Flags().GetUint64("seed")
			asJSON, _ := cmd.Flags().GetBool("json")

			if len(mix) == 0 {
				if mix, err = defaultMix(players); err != nil {
					return err
				}
			}
			roles, err := engine.NewRegistry().Build(mix)
			if err != nil {
				return err
			}
			if seed == 0 {
				seed = rand.Uint64()
			}

			table := make([]engine.Participant, players)
			for i := range table {
				table[i] = bot.New(fmt.Sprintf("bot%d", i+1), seed+uint64(i), log)
			}

			opts := engine.DefaultOptions()
			opts.LoneWolf = cfg.LoneWolf
			if cmd.Flags().Changed("lone-wolf") {
				opts.LoneWolf, _ = cmd.Flags().GetBool("lone-wolf")
			}
			opts.DebugSetRoles, _ = cmd.Flags().GetBool("no-shuffle")
			opts.Logger = log

			g, err := engine.New(table, roles, opts)
			if err != nil {
				return err
			}
			dealt := g.FinalRoles()
			if err := g.Play(cmd.Context(), nil); err != nil {
				return err
			}
			log.Info("simulation finished", zap.Uint64("seed", seed))

			res := g.Result()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			printResult(cmd, table, dealt, res)
			return nil
		},
	}

	cmd.Flags().Int("players", 5, "number of bots at the table")
	cmd.Flags().StringToInt("roles", nil, "role mix, e.g. Werewolf=1,Seer=1,Mason=2")
	cmd.Flags().Uint64("seed", 0, "bot seed (0 picks one at random)")
	cmd.Flags().Bool("lone-wolf", false, "a lone werewolf may look at a center card")
	cmd.Flags().Bool("no-shuffle", false, "deal the roles in registry order")
	cmd.Flags().Bool("json", false, "output in JSON format")
	return cmd
}

func printResult(cmd *cobra.Command, table []engine.Participant, dealt map[string]string, res engine.Result) {
	out := cmd.OutOrStdout()
	for _, p := range table {
		name := p.Name()
		line := fmt.Sprintf("%-6s dealt %-12s ends as %-12s votes %s", name, dealt[name], res.FinalRoles[name], res.Votes[name])
		if slices.Contains(res.Dead, name) {
			line += "  dead"
		}
		if slices.Contains(res.Winners, name) {
			line += "  won"
		}
		fmt.Fprintln(out, strings.TrimRight(line, " "))
	}
	fmt.Fprintf(out, "dead: %s\n", strings.Join(res.Dead, ", "))
	fmt.Fprintf(out, "winners: %s\n", strings.Join(res.Winners, ", "))
}
