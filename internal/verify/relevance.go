package verify

import "github.com/avolkov/tessera/internal/model"

// caseRelevance maps each case type to the source types that earn the
// relevance bonus. A source type absent from a case's list still scores
// the base relevance; presence adds +30.
var caseRelevance = map[model.CaseType][]model.SourceType{
	model.CaseHumanTrafficking: {
		model.SourceSurvivorTestimony, model.SourceWitnessStatement,
		model.SourceTravelRecord, model.SourceCommunicationLog,
		model.SourceFinancialRecord, model.SourceLocationRecord,
	},
	model.CaseFinancialFraud: {
		model.SourceFinancialRecord, model.SourceLegalDocument,
		model.SourceDigitalCommunication, model.SourceGovernmentRecord,
	},
	model.CaseMissingPerson: {
		model.SourceWitnessStatement, model.SourceLocationRecord,
		model.SourceTravelRecord, model.SourceCommunicationLog,
		model.SourcePhotograph,
	},
	model.CaseOrganizedCrime: {
		model.SourceCommunicationLog, model.SourceFinancialRecord,
		model.SourceWitnessStatement, model.SourcePhysicalEvidence,
		model.SourceAudioRecording,
	},
	model.CaseWarCrime: {
		model.SourceSurvivorTestimony, model.SourcePhotograph,
		model.SourceVideoRecording, model.SourceGovernmentRecord,
		model.SourceExpertReport, model.SourceMedicalRecord,
	},
	model.CaseCybercrime: {
		model.SourceDigitalCommunication, model.SourceCommunicationLog,
		model.SourceFinancialRecord, model.SourceExpertReport,
	},
	model.CaseDomesticAbuse: {
		model.SourceSurvivorTestimony, model.SourceMedicalRecord,
		model.SourceWitnessStatement, model.SourcePhotograph,
		model.SourceCommunicationLog,
	},
	model.CaseCorruption: {
		model.SourceFinancialRecord, model.SourceGovernmentRecord,
		model.SourceCommunicationLog, model.SourceLegalDocument,
	},
	model.CaseAsylumClaim: {
		model.SourceSurvivorTestimony, model.SourceGovernmentRecord,
		model.SourceTravelRecord, model.SourceMedicalRecord,
		model.SourceExpertReport,
	},
	model.CaseWrongfulConviction: {
		model.SourceCourtFiling, model.SourceWitnessStatement,
		model.SourcePhysicalEvidence, model.SourceExpertReport,
		model.SourceLegalDocument,
	},
	model.CasePropertyDispute: {
		model.SourceLegalDocument, model.SourceGovernmentRecord,
		model.SourceCourtFiling, model.SourcePhotograph,
	},
	model.CaseEnvironmentalCrime: {
		model.SourcePhotograph, model.SourceExpertReport,
		model.SourceGovernmentRecord, model.SourcePhysicalEvidence,
		model.SourceVideoRecording,
	},
}

// relevantSource reports whether the source type earns the case-type
// relevance bonus.
func relevantSource(caseType model.CaseType, source model.SourceType) bool {
	for _, s := range caseRelevance[caseType] {
		if s == source {
			return true
		}
	}
	return false
}
