package notifier

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
	"github.com/caterhub/caterhub-api/internal/models"
)

// Notifier announces guest registrations to the operations team.
type Notifier interface {
	NotifyGuestRegistration(event models.Event, guest models.Guest) error
}

type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
}

func NewDiscordNotifier(session *discordgo.Session, channelID string) *DiscordNotifier {
	return &DiscordNotifier{
		session:   session,
		channelID: channelID,
	}
}

func (n *DiscordNotifier) NotifyGuestRegistration(event models.Event, guest models.Guest) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	if n.channelID == "" {
		return fmt.Errorf("discord channel ID is empty")
	}

	party := 1
	partyStr := "alone"
	if guest.ComingWithExtra {
		party += guest.NumberOfExtra
		partyStr = fmt.Sprintf("with %d extra (%d adults, %d minors)",
			guest.NumberOfExtra, guest.NumberOfAdults, guest.NumberOfMinors)
	}

	dietaryStr := ""
	if guest.Dietary != "" && guest.Dietary != models.DietaryNone {
		dietaryStr = fmt.Sprintf("\n**Dietary:** %s", guest.Dietary)
	}

	message := fmt.Sprintf("🎉 **New Registration**\n**Event:** %s (%s)\n**Guest:** %s %s, coming %s\n**Party size:** %d%s",
		event.Name,
		event.Date.Format("2006-01-02"),
		guest.FirstName,
		guest.LastName,
		partyStr,
		party,
		dietaryStr,
	)

	_, err := n.session.ChannelMessageSend(n.channelID, message)
	if err != nil {
		log.Printf("Failed to send discord message: %v", err)
		return err
	}

	return nil
}
