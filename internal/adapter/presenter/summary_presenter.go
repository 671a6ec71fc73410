package presenter

import (
	"github.com/johnquangdev/meeting-scribe/internal/adapter/dto"
	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
)

// ToSummaryResponse converts a SummaryRecord entity to its API response
func ToSummaryResponse(record *entities.SummaryRecord) *dto.MeetingSummaryResponse {
	if record == nil || record.Summary == nil {
		return nil
	}

	summary := record.Summary
	response := &dto.MeetingSummaryResponse{
		ID:               record.ID,
		Topics:           summary.Topics,
		Decisions:        summary.Decisions,
		ActionItems:      toActionItemDTOs(summary.ActionItems),
		Degraded:         record.Degraded,
		Insights:         toInsightsDTO(record.Insights),
		Transcript:       toTranscriptInfo(record.Transcript),
		ModelUsed:        record.ModelUsed,
		ProcessingTimeMS: record.ProcessingTimeMS,
		CreatedAt:        record.CreatedAt,
	}

	// The raw text is only interesting when parsing got nothing out of it.
	if record.Degraded {
		response.RawResponse = summary.RawResponse
	}

	return response
}

func toActionItemDTOs(items []entities.ActionItem) []dto.ActionItemDTO {
	out := make([]dto.ActionItemDTO, len(items))
	for i, item := range items {
		out[i] = dto.ActionItemDTO{
			Description: item.Description,
			Owner:       item.Owner,
			DueDate:     item.DueDate,
			Priority:    item.Priority,
		}
	}
	return out
}

func toInsightsDTO(insights *entities.MeetingInsights) *dto.InsightsDTO {
	if insights == nil {
		return nil
	}

	return &dto.InsightsDTO{
		MeetingType: insights.MeetingType,
		Highlights:  insights.Highlights,
		Timeline: dto.TimelineDTO{
			Immediate:   insights.Timeline.Immediate,
			ThisWeek:    insights.Timeline.ThisWeek,
			NextWeek:    insights.Timeline.NextWeek,
			Future:      insights.Timeline.Future,
			Unscheduled: insights.Timeline.Unscheduled,
		},
		OwnerLoad: insights.OwnerLoad,
		Efforts:   insights.Efforts,
	}
}

func toTranscriptInfo(transcript *entities.Transcript) *dto.TranscriptInfoDTO {
	if transcript == nil {
		return nil
	}

	return &dto.TranscriptInfoDTO{
		DurationSeconds: transcript.DurationSeconds,
		Language:        transcript.Language,
		Confidence:      transcript.Confidence,
		Utterances:      len(transcript.Utterances),
		HasSpeakers:     transcript.HasSpeakers(),
	}
}
