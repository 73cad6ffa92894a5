package types

import "sync"

var builtinEntities = []EntityDef{
	{Name: Referenceable, GUID: "a32316b8-dc8c-48c5-b12b-71c1b2a080bf"},
	{Name: Asset, GUID: "896d14c2-7522-4f6c-8519-757711943fe6", SuperType: Referenceable},
	{Name: Infrastructure, GUID: "c19746ac-b3ec-49ce-af4b-83348fc55e07", SuperType: Asset},
	{Name: ITInfrastructure, GUID: "151e6dd1-54a0-4b7f-a072-85caa09d1dda", SuperType: Infrastructure},
	{Name: Host, GUID: "1abd16db-5b8a-4fd9-aee5-205db3febe99", SuperType: ITInfrastructure},
	{Name: SoftwareServerPlatform, GUID: "ba7c7884-32ce-4991-9c41-9778f1fec6aa", SuperType: ITInfrastructure},
	{Name: SoftwareServer, GUID: "aa7c7884-32ce-4991-9c41-9778f1fec6aa", SuperType: ITInfrastructure},
	{Name: Application, GUID: "58280f3c-9d63-4eae-9509-3f223872fb25", SuperType: ITInfrastructure},
	{Name: Process, GUID: "d8f33bd7-afa9-4a11-a8c7-07dcec83c050", SuperType: Asset},
	{Name: DeployedSoftwareComponent, GUID: "486af62c-dcfd-4859-ab24-eab2e380ecfd", SuperType: Process},
	{Name: SchemaElement, GUID: "718d4244-8559-49ed-ad5a-10e5c305a656", SuperType: Referenceable},
	{Name: SchemaType, GUID: "5bd4a3e7-d22d-4a3d-a115-066ee8e0754f", SuperType: SchemaElement},
	{Name: ComplexSchemaType, GUID: "786a6199-0ce8-47bf-b006-9ace1c5510e4", SuperType: SchemaType},
	{Name: Comment, GUID: "1a226073-9c84-40e4-a422-fbddb9b84278", SuperType: Referenceable},
	{Name: LicenseType, GUID: "046a049d-5f80-4e5b-b0ae-f3cf6009b513", SuperType: Referenceable},
	{Name: Collection, GUID: "347005ba-2b35-4670-b5a7-12c9ebed0cf7", SuperType: Referenceable},
	{Name: ExternalReference, GUID: "af536f20-062b-48ef-9c31-1ddd05b04c56", SuperType: Referenceable},
	{Name: ActorProfile, GUID: "5a2f38dc-d69d-4a6f-ad26-ac86f118fa35", SuperType: Referenceable},
	{Name: ITProfile, GUID: "81394f85-6008-465b-926e-b3fae4668937", SuperType: ActorProfile},
	{Name: ContactDetails, GUID: "79296df8-645a-4ef7-a011-912d1cdcf75a"},
	{Name: UserIdentity, GUID: "fbe95779-1f3c-4ac6-aa9d-24963ff16282", SuperType: Referenceable},
}

var builtinRelationships = []RelationshipDef{
	{Name: ProcessHierarchy, GUID: "70dbbda3-903f-49f7-9782-32b503c43e0e",
		End1Type: Process, End1Name: "parentProcess", End2Type: Process, End2Name: "childProcess"},
	{Name: ServerAssetUse, GUID: "56315447-88a6-4235-ba91-fead86524ebf",
		End1Type: SoftwareServer, End1Name: "consumedBy", End2Type: Asset, End2Name: "consumedAsset"},
	{Name: DeployedOn, GUID: "6932ba75-9522-4a06-a4a4-ee60a4792f5d",
		End1Type: Asset, End1Name: "deployedElement", End2Type: ITInfrastructure, End2Name: "deployedTo"},
	{Name: AttachedComment, GUID: "0d90501b-bf29-4621-a207-0c8c953bdac9",
		End1Type: Referenceable, End1Name: "commentAnchor", End2Type: Comment, End2Name: "comments"},
	{Name: ExternalReferenceLink, GUID: "7d818a67-ab45-481c-bc28-f6b1caf12f06",
		End1Type: Referenceable, End1Name: "attachedTo", End2Type: ExternalReference, End2Name: "externalReference"},
	{Name: License, GUID: "35e53b7f-2312-4d66-ae90-2d4cb47901ee",
		End1Type: Referenceable, End1Name: "licensed", End2Type: LicenseType, End2Name: "licenses"},
	{Name: CollectionMembership, GUID: "5cabb76a-e25b-4bb5-8b93-768bbac005af",
		End1Type: Collection, End1Name: "foundInCollections", End2Type: Referenceable, End2Name: "members"},
	{Name: AssetSchemaType, GUID: "815b004d-73c6-4728-9dd9-536f4fe803cd",
		End1Type: Asset, End1Name: "describesAssets", End2Type: SchemaType, End2Name: "schema"},
	{Name: ProfileIdentity, GUID: "01664609-e777-4079-b543-6baffe910ff1",
		End1Type: ActorProfile, End1Name: "profile", End2Type: UserIdentity, End2Name: "userIdentities"},
	{Name: ContactThrough, GUID: "6cb9af43-184e-4dfa-854a-1572bcf0fe75",
		End1Type: ActorProfile, End1Name: "contactDetails", End2Type: ContactDetails, End2Name: "contacts"},
	{Name: RelatedAsset, GUID: "a0b6d5d9-0b1b-4a92-9d48-d3a1b2c8e9f1",
		End1Type: Asset, End1Name: "relatedAssets", End2Type: Asset, End2Name: "relatedAssets"},
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry of the built-in open metadata types.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := NewRegistry(builtinEntities, builtinRelationships)
		if err != nil {
			panic("types: invalid built-in definitions: " + err.Error())
		}
		defaultRegistry = r
	})
	return defaultRegistry
}
