package discord

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/grubvote/internal/models"
	"github.com/KirkDiggler/grubvote/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
)

const (
	colorGreen = 0x00ff00
	colorBlue  = 0x3498db
	colorGrey  = 0x95a5a6
	topEntries = 3
)

var medals = []string{"🥇", "🥈", "🥉"}

// renderResultsEmbed renders a finished round with the top of the leaderboard
func renderResultsEmbed(code string, results *models.Results, msg *messaging.GetResultsMessageOutput) *discordgo.MessageEmbed {
	var fields []*discordgo.MessageEmbedField

	for i, entry := range results.Leaderboard {
		if i == topEntries {
			break
		}

		name := entry.Name
		if entry.Restaurant != "" {
			name = fmt.Sprintf("%s (%s)", entry.Name, entry.Restaurant)
		}

		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("%s %s", medals[i], name),
			Value:  renderEntryStats(entry),
			Inline: false,
		})
	}

	if rest := len(results.Leaderboard) - topEntries; rest > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "Also rated",
			Value: fmt.Sprintf("%d more", rest),
		})
	}

	return &discordgo.MessageEmbed{
		Title:       msg.Title,
		Description: msg.Message,
		Color:       colorGreen,
		Fields:      fields,
		Footer:      &discordgo.MessageEmbedFooter{Text: "Session " + code},
	}
}

func renderEntryStats(entry *models.LeaderboardEntry) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Score **%.2f**", entry.Score)
	if entry.Voters == 1 {
		sb.WriteString(" from 1 vote")
	} else {
		fmt.Fprintf(&sb, " from %d votes", entry.Voters)
	}
	fmt.Fprintf(&sb, "\nTaste %.1f | Mood %.1f | Value %.1f", entry.TasteAvg, entry.MoodAvg, entry.ValueAvg)
	if entry.Price > 0 {
		fmt.Fprintf(&sb, " | $%.2f", entry.Price)
	}

	return sb.String()
}

// renderVotingStartedEmbed renders a round opening
func renderVotingStartedEmbed(code string, msg *messaging.GetVotingStartedMessageOutput) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Voting is open",
		Description: msg.Message,
		Color:       colorBlue,
		Footer:      &discordgo.MessageEmbedFooter{Text: "Session " + code},
	}
}

// renderExpiredEmbed renders a session that timed out
func renderExpiredEmbed(code string, msg *messaging.GetExpiredMessageOutput) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Session closed",
		Description: msg.Message,
		Color:       colorGrey,
		Footer:      &discordgo.MessageEmbedFooter{Text: "Session " + code},
	}
}
