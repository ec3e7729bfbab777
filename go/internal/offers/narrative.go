package offers

import (
	"fmt"

	"github.com/mcdev12/frontoffice/go/internal/models"
)

// narrativeFor renders the offering GM's message for an offer, keyed on
// the front office's situation and aggression.
func narrativeFor(profile models.FrontOfficeProfile, targetName string) string {
	switch profile.Situation {
	case models.SituationContending:
		if profile.Aggression == models.AggressionAggressive {
			return fmt.Sprintf("We're all-in this year and %s puts us over the top. Everything here is on the table.", targetName)
		}
		return fmt.Sprintf("We think %s is the missing piece for our playoff push. Here's what we can move.", targetName)
	case models.SituationRebuilding:
		if profile.Aggression == models.AggressionConservative {
			return fmt.Sprintf("We're building for the long haul and %s fits our timeline. No rush on our end.", targetName)
		}
		return fmt.Sprintf("%s is exactly the kind of young talent we're collecting. Take a look at the package.", targetName)
	default:
		if profile.Aggression == models.AggressionAggressive {
			return fmt.Sprintf("We're shaking up the roster and %s is our top target. Let's make something happen.", targetName)
		}
		return fmt.Sprintf("We've had our eye on %s for a while. Open to discussing the pieces.", targetName)
	}
}
