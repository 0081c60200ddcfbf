package main

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/codequest-rpg/dungeon-engine/internal/content"
	"github.com/codequest-rpg/dungeon-engine/internal/services"
	"github.com/codequest-rpg/dungeon-engine/internal/services/combat"
	"github.com/codequest-rpg/dungeon-engine/internal/services/narrative"
)

func newSimulateCommand() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a scripted fight and skill check against the live store",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			provider, cfg, err := buildProvider(ctx)
			if err != nil {
				return err
			}

			// In-memory runs start with an empty catalog
			bundle, err := content.LoadDir(cfg.Content.Dir)
			if err != nil {
				return err
			}
			if err := bundle.Seed(ctx, provider.Catalog); err != nil {
				return err
			}

			if err := runCombatDemo(ctx, provider, userID); err != nil {
				return err
			}
			return runNarrativeDemo(ctx, provider, userID)
		},
	}

	cmd.Flags().StringVar(&userID, "user", "demo-player", "user id to simulate as")
	return cmd
}

func runCombatDemo(ctx context.Context, provider *services.Provider, userID string) error {
	session, err := provider.Combat.StartRandomCombat(ctx, userID)
	if err != nil {
		return err
	}
	log.Printf("Fighting %s (%d hp)", session.EnemyName, session.EnemyMaxHealth)

	turns := 0
	damageDealt := 0
	damageTaken := 0
	for {
		turn, turnErr := provider.Combat.ExecuteCombatTurn(ctx, userID, "slash", true)
		if turnErr != nil {
			return turnErr
		}
		turns = turn.TurnNumber
		damageDealt += turn.DamageDealt
		damageTaken += turn.DamageTaken
		log.Printf("Turn %d: dealt %d (crit=%v), took %d, enemy at %d hp",
			turn.TurnNumber, turn.DamageDealt, turn.IsCritical, turn.DamageTaken, turn.EnemyHealth)

		if turn.EnemyDefeated {
			rewards, victoryErr := provider.Combat.EndCombatVictory(ctx, &combat.VictoryInput{
				UserID:      userID,
				TurnsTaken:  turns,
				DamageDealt: damageDealt,
				DamageTaken: damageTaken,
			})
			if victoryErr != nil {
				return victoryErr
			}
			log.Printf("Victory! +%d gold, +%d xp, level %d", rewards.Gold, rewards.XP, rewards.NewLevel)
			return nil
		}
		if turn.PlayerDefeated {
			if defeatErr := provider.Combat.EndCombatDefeat(ctx, userID); defeatErr != nil {
				return defeatErr
			}
			log.Printf("Defeated after %d turns, respawning", turns)
			return nil
		}
	}
}

func runNarrativeDemo(ctx context.Context, provider *services.Provider, userID string) error {
	progress, err := provider.Narrative.StartFloor(ctx, userID, 1)
	if err != nil {
		return err
	}

	choices, err := provider.Narrative.GetLocationChoices(ctx, userID, progress.CurrentLocationID)
	if err != nil {
		return err
	}
	if len(choices) == 0 {
		log.Printf("No choices at %s", progress.CurrentLocationID)
		return nil
	}

	choice := choices[0]
	if !choice.RequiresSkillCheck {
		outcome, _, simpleErr := provider.Narrative.MakeSimpleChoice(ctx, userID, choice.ID)
		if simpleErr != nil {
			return simpleErr
		}
		log.Printf("Chose %q: %s", choice.ChoiceText, outcome.Description)
		return nil
	}

	roll, err := provider.Narrative.RollD20(ctx)
	if err != nil {
		return err
	}
	result, err := provider.Narrative.ResolveSkillCheck(ctx, &narrative.SkillCheckInput{
		UserID:           userID,
		ChoiceID:         choice.ID,
		DiceRoll:         roll,
		StatModifier:     2,
		ChallengeSuccess: true,
	})
	if err != nil {
		return err
	}
	log.Printf("Rolled %d+%d vs DC %d: %s (%s)",
		result.DiceRoll, result.AppliedModifier, result.DC, result.OutcomeType, result.Outcome.Description)
	return nil
}
