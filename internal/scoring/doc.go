// Package scoring implements the questionnaire risk scoring engine.
//
// Score starts from 100 and subtracts a weighted penalty for every checklist
// item that is not fully met. Weights are adjusted per organization by
// industry and downtime multipliers, all expressed as lookup tables. The
// same call derives the risk band, insurance readiness tier, downtime and
// breach cost estimates, and the prioritized finding list. Everything here is
// a pure function of the profile and answers.
package scoring
